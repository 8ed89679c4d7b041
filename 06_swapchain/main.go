package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hellotriangle/render"
	"github.com/vkngwrapper/hellotriangle/render/vkng"
)

type HelloTriangleApplication struct {
	config render.Config
	logger *slog.Logger

	context *vkng.Context
}

func (app *HelloTriangleApplication) Run() (err error) {
	app.context, err = vkng.NewContext(app.config, app.logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, app.context.Destroy())
	}()

	err = app.initVulkan()
	if err != nil {
		return err
	}

	return app.mainLoop()
}

func (app *HelloTriangleApplication) initVulkan() error {
	err := app.context.CreateInstance()
	if err != nil {
		return err
	}

	err = app.context.CreateSurface()
	if err != nil {
		return err
	}

	err = app.context.PickAdapter()
	if err != nil {
		return err
	}

	err = app.context.CreateLogicalDevice()
	if err != nil {
		return err
	}

	return app.context.CreateSwapchain()
}

func (app *HelloTriangleApplication) mainLoop() error {
	app.context.Window().WaitForQuit()
	return nil
}

func main() {
	runtime.LockOSThread()

	config := render.DefaultConfig()
	config.BindFlags(flag.CommandLine)
	flag.Parse()

	app := &HelloTriangleApplication{
		config: config,
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	err := app.Run()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
