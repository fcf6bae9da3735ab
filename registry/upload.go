package registry

import "github.com/go-gl/gl/v4.3-core/gl"

// Upload transfers the whole table to the GPU storage buffer in one call,
// replacing any previous contents. Call once after each Load, with the GL
// context current. Everything else in this package is GL-free so the loader
// and queries stay unit-testable.
func (r *Registry) Upload() {
	if r.ssbo == 0 {
		gl.GenBuffers(1, &r.ssbo)
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, r.ssbo)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(r.records)*RecordSize, gl.Ptr(r.records), gl.STATIC_DRAW)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

// Bind exposes the uploaded table at the given SSBO binding index. Cheap
// and idempotent; no data moves.
func (r *Registry) Bind(binding uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, r.ssbo)
}

// Destroy releases the storage buffer.
func (r *Registry) Destroy() {
	if r.ssbo != 0 {
		gl.DeleteBuffers(1, &r.ssbo)
		r.ssbo = 0
	}
}
