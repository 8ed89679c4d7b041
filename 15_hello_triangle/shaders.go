package main

import (
	"embed"
	"io/fs"
	"os"

	"github.com/vkngwrapper/hellotriangle/render"
)

//go:generate glslc shaders/shader.vert -o shaders/vert.spv
//go:generate glslc shaders/shader.frag -o shaders/frag.spv

//go:embed shaders
var shaders embed.FS

// shaderSource serves the embedded shaders unless a flag pointed elsewhere,
// in which case paths are resolved against the working directory.
func shaderSource(config render.Config) fs.FS {
	defaults := render.DefaultConfig()
	if config.VertexShaderPath == defaults.VertexShaderPath && config.FragmentShaderPath == defaults.FragmentShaderPath {
		return shaders
	}
	return os.DirFS(".")
}
