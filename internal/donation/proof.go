package donation

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxProofSize bounds uploaded proof-of-transfer images.
const MaxProofSize = 2 << 20 // 2MB

var proofExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ValidateProof checks the size and sniffed content type of an
// uploaded proof image and returns the canonical file extension.
func ValidateProof(data []byte) (ext string, err error) {
	if len(data) == 0 {
		return "", ErrMissingProof
	}
	if len(data) > MaxProofSize {
		return "", ErrProofTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := proofExtensions[contentType]
	if !ok {
		return "", ErrProofBadType
	}
	return ext, nil
}

// ProofStore persists proof images and returns a storable path.
type ProofStore interface {
	Save(data []byte, ext string) (string, error)
}

type diskProofStore struct {
	dir string
}

func NewDiskProofStore(dir string) ProofStore {
	return &diskProofStore{dir: dir}
}

// Save writes the proof under a random name so uploads can never
// collide or be guessed.
func (s *diskProofStore) Save(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
