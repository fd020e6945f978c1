package signer

// Signer interface for signing generated reports
type Signer interface {
	// SignDetached creates an armored detached signature
	SignDetached(data []byte) ([]byte, error)
}
