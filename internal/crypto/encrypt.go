package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/coin-redeem/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for seed batches
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s): a batch is opened rarely, on the issuer's
	// machine, and every seed in it is a bearer claim on its coin.
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	// BatchExt is the extension of encrypted seed batch files
	BatchExt = ".ccb"

	batchNetwork = "concordium"
)

// scryptCost is a var so tests can lower it
var scryptCost = scryptN

// EncryptBatch encrypts the batch and writes it to a .ccb file.
// contract is the display form of the contract address the coins were issued on.
// password must be []byte for security (caller should zero it after use)
func EncryptBatch(filePath, contract string, batch *model.BatchData, password []byte) error {
	// Check file extension
	if !strings.HasSuffix(filePath, BatchExt) {
		return fmt.Errorf("file must have %s extension", BatchExt)
	}

	// Never overwrite a non-empty batch: its seeds may already be printed
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	if len(batch.Coins) == 0 {
		return errors.New("batch has no coins")
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return err
	}

	// Serialize batch data
	plaintext, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal batch data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	batchFile := model.BatchFile{
		Network:    batchNetwork,
		Contract:   contract,
		Count:      len(batch.Coins),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(batchFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch file: %w", err)
	}

	if err := os.WriteFile(filePath, fileData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// newGCM derives the file key from password and salt
func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptCost, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
