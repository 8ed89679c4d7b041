package render

import (
	"encoding/binary"
	"io/fs"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

const spirvMagic = 0x07230203

// ShaderCode holds SPIR-V words for the two stages of the triangle pipeline.
type ShaderCode struct {
	Vertex   []uint32
	Fragment []uint32
}

// LoadShaders reads both compiled shaders from fsys.
func LoadShaders(fsys fs.FS, vertPath, fragPath string) (ShaderCode, error) {
	var code ShaderCode
	var group errgroup.Group

	group.Go(func() error {
		var err error
		code.Vertex, err = loadSPIRV(fsys, vertPath)
		return err
	})
	group.Go(func() error {
		var err error
		code.Fragment, err = loadSPIRV(fsys, fragPath)
		return err
	})

	if err := group.Wait(); err != nil {
		return ShaderCode{}, err
	}
	return code, nil
}

func loadSPIRV(fsys fs.FS, path string) ([]uint32, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "load shader %s", path)
	}

	code, err := BytesToBytecode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "load shader %s", path)
	}
	return code, nil
}

// BytesToBytecode converts a little-endian SPIR-V binary into words.
func BytesToBytecode(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Newf("spir-v size %d is not a positive multiple of 4", len(b))
	}

	byteCode := make([]uint32, len(b)/4)
	for i := range byteCode {
		byteCode[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	if byteCode[0] != spirvMagic {
		return nil, errors.Newf("bad spir-v magic 0x%08x", byteCode[0])
	}
	return byteCode, nil
}
