package opengl

import "github.com/go-gl/gl/v4.3-core/gl"

// newTexture2D allocates immutable single-level storage with the sampling
// parameters every pipeline texture shares: nearest filtering (cells are
// square pixels, never interpolated) and edge clamping.
func newTexture2D(internalFormat uint32, width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexStorage2D(gl.TEXTURE_2D, 1, internalFormat, int32(width), int32(height))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func deleteTextures(texs ...uint32) {
	for _, t := range texs {
		if t != 0 {
			gl.DeleteTextures(1, &t)
		}
	}
}
