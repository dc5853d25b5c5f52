package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
)

var (
	cryptoKey     []byte
	cryptoKeyOnce sync.Once
)

var ErrInvalidToken = errors.New("invalid or corrupted token")

// getCryptoKey menurunkan kunci AES-256 dari APP_SECRET_KEY (sekali per proses)
func getCryptoKey() []byte {
	cryptoKeyOnce.Do(func() {
		secret := os.Getenv("APP_SECRET_KEY")
		if secret == "" {
			// Default secret untuk development, sama dengan .env.example
			secret = "TableOrderSecretKey2024"
		}
		sum := sha256.Sum256([]byte(secret))
		cryptoKey = sum[:]
	})
	return cryptoKey
}

// Encrypt mengenkripsi plaintext menjadi token "hex(iv):hex(ciphertext)".
// IV dibuat acak per pemanggilan sehingga token yang sama tidak pernah berulang.
func Encrypt(plain string) (string, error) {
	block, err := aes.NewCipher(getCryptoKey())
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	// Checksum disisipkan di akhir plaintext supaya token yang
	// dimodifikasi terdeteksi saat dekripsi.
	sum := sha256.Sum256([]byte(plain))
	payload := append([]byte(plain), sum[:8]...)
	payload = pkcs7Pad(payload, aes.BlockSize)

	ciphertext := make([]byte, len(payload))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, payload)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt membalikkan Encrypt. Token yang rusak atau dimodifikasi
// (delimiter salah, hex tidak valid, padding/checksum tidak cocok)
// mengembalikan ErrInvalidToken agar caller bisa memperlakukannya
// sebagai "invalid QR" dan bukan crash.
func Decrypt(token string) (string, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return "", ErrInvalidToken
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrInvalidToken
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrInvalidToken
	}

	block, err := aes.NewCipher(getCryptoKey())
	if err != nil {
		return "", err
	}

	payload := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(payload, ciphertext)

	payload, err = pkcs7Unpad(payload, aes.BlockSize)
	if err != nil {
		return "", ErrInvalidToken
	}
	if len(payload) < 8 {
		return "", ErrInvalidToken
	}

	plain := payload[:len(payload)-8]
	sum := sha256.Sum256(plain)
	if !bytes.Equal(sum[:8], payload[len(payload)-8:]) {
		return "", ErrInvalidToken
	}

	return string(plain), nil
}

// EncryptJSON meng-encode nilai ke JSON lalu mengenkripsinya menjadi token.
func EncryptJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Encrypt(string(data))
}

// DecryptJSON mendekripsi token lalu meng-unmarshal hasilnya ke out.
func DecryptJSON(token string, out interface{}) error {
	plain, err := Decrypt(token)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(plain), out); err != nil {
		return ErrInvalidToken
	}
	return nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
