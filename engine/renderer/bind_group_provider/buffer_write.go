package bind_group_provider

// BufferWrite is one queued uniform upload: Data is written into the buffer
// at Binding on Provider, starting Offset bytes in. The render loop stages
// its per-frame uniform refreshes (camera, light, object transforms) as a
// slice of these and hands the whole batch to the renderer's WriteBuffers
// once per frame.
type BufferWrite struct {
	// Provider owns the destination buffer.
	Provider BindGroupProvider

	// Binding selects the buffer within the provider's group.
	Binding int

	// Offset is the destination byte offset within the buffer.
	Offset uint64

	// Data is the marshaled uniform bytes to upload.
	Data []byte
}
