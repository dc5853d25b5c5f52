package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// GenerateTmpCode menghasilkan kode numerik 6 digit untuk bergabung ke sesi meja.
// Memakai crypto/rand supaya kode tidak mudah ditebak.
func GenerateTmpCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// rand.Reader hampir tidak pernah gagal; fallback ke uuid
		return uuid.NewString()[:6]
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// GenerateSessionToken menghasilkan token unik sebagai kunci lookup alternatif.
func GenerateSessionToken() string {
	return uuid.NewString()
}

// GenerateDeletedPlaceholder menghasilkan identifier acak
// sebagai pengganti identifier meja yang di-soft-delete.
func GenerateDeletedPlaceholder() string {
	return "deleted-" + uuid.NewString()[:8]
}
