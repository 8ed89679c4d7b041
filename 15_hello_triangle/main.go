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

	return app.context.Run()
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

	err = app.context.CreateSwapchain()
	if err != nil {
		return err
	}

	err = app.context.CreateRenderPass()
	if err != nil {
		return err
	}

	err = app.context.CreateGraphicsPipeline(shaderSource(app.config))
	if err != nil {
		return err
	}

	err = app.context.CreateFramebuffers()
	if err != nil {
		return err
	}

	err = app.context.CreateCommandPool()
	if err != nil {
		return err
	}

	err = app.context.CreateCommandBuffers()
	if err != nil {
		return err
	}

	return app.context.CreateSyncObjects()
}

func main() {
	runtime.LockOSThread()

	config := render.DefaultConfig()
	config.BindFlags(flag.CommandLine)
	verbose := flag.Bool("v", false, "log frame statistics")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	app := &HelloTriangleApplication{
		config: config,
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}

	err := app.Run()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
