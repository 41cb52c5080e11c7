package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// IVSize - размер IV для AES-CBC (один блок, 16 bytes)
	IVSize = aes.BlockSize
	// KeySize - размер ключа AES-256
	KeySize = sha256.Size

	// Separator разделяет hex(iv) и hex(ciphertext) в закодированной форме
	Separator = "."

	// SentinelUnrecognizedFormat возвращается вместо значения, которое не похоже на закодированную форму
	// (например, legacy записи, сохраненные открытым текстом)
	SentinelUnrecognizedFormat = "[unrecognized format]"
	// SentinelDecryptionFailed возвращается, когда значение похоже на закодированную форму, но не расшифровывается
	SentinelDecryptionFailed = "[decryption failed]"
)

var (
	// ErrUnrecognizedFormat означает, что значение не соответствует формату <ivHex>.<ciphertextHex>
	ErrUnrecognizedFormat = errors.New("unrecognized encoded format")
	// ErrDecryptionFailed означает, что значение в правильном формате не удалось расшифровать
	ErrDecryptionFailed = errors.New("decryption failed")
)

// EncodedPattern описывает закодированную форму секрета: 32 hex символа IV, точка, hex шифротекста.
var EncodedPattern = regexp.MustCompile(`^[0-9a-f]{32}\.[0-9a-f]+$`)

// IsEncoded сообщает, находится ли значение в закодированной форме
func IsEncoded(value string) bool {
	return EncodedPattern.MatchString(value)
}

// IsSentinel сообщает, является ли значение одним из sentinel, возвращаемых вместо нерасшифрованного секрета
func IsSentinel(value string) bool {
	return value == SentinelUnrecognizedFormat || value == SentinelDecryptionFailed
}

// Cipher шифрует одиночные строковые значения AES-256-CBC ключом,
// производным от серверного секрета. Ключ вычисляется один раз в NewCipher
// и после этого не меняется.
type Cipher struct {
	block cipher.Block
}

// DeriveKey возвращает SHA-256 от секрета. Результат используется как ключ AES-256 напрямую,
// поэтому деривация должна оставаться неизменной между запусками.
func DeriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// NewCipher создает Cipher из серверного секрета
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("cipher secret cannot be empty")
	}
	return NewCipherFromKey(DeriveKey(secret))
}

// NewCipherFromKey создает Cipher из готового 32-байтного ключа
func NewCipherFromKey(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return &Cipher{block: block}, nil
}

// Encode шифрует plaintext и возвращает hex(iv) + "." + hex(ciphertext).
// Для каждого вызова генерируется новый случайный IV.
func (c *Cipher) Encode(plaintext string) (string, error) {
	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + Separator + hex.EncodeToString(ciphertext), nil
}

// Decode расшифровывает значение в закодированной форме.
// Decode никогда не паникует: при ошибке возвращается sentinel строка вместе с
// ErrUnrecognizedFormat или ErrDecryptionFailed, чтобы вызывающий мог продолжить
// обработку остальных записей.
func (c *Cipher) Decode(encoded string) (string, error) {
	if !IsEncoded(encoded) {
		return SentinelUnrecognizedFormat, ErrUnrecognizedFormat
	}

	ivHex, ctHex, _ := strings.Cut(encoded, Separator)

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return SentinelDecryptionFailed, fmt.Errorf("%w: iv: %v", ErrDecryptionFailed, err)
	}
	ciphertext, err := hex.DecodeString(ctHex)
	if err != nil {
		return SentinelDecryptionFailed, fmt.Errorf("%w: ciphertext: %v", ErrDecryptionFailed, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return SentinelDecryptionFailed, fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrDecryptionFailed)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return SentinelDecryptionFailed, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	if !utf8.Valid(plaintext) {
		return SentinelDecryptionFailed, fmt.Errorf("%w: plaintext is not valid utf-8", ErrDecryptionFailed)
	}

	return string(plaintext), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding")
		}
	}

	return data[:len(data)-n], nil
}
