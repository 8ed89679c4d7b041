//go:build release

package render

const validationByDefault = false
