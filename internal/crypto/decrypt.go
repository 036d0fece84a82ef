package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/coin-redeem/internal/model"
)

// ErrInvalidPassword is returned when a batch cannot be opened with the given password
var ErrInvalidPassword = errors.New("invalid password")

// DecryptBatch reads and decrypts a .ccb file
// password must be []byte for security (caller should zero it after use)
func DecryptBatch(filePath string, password []byte) (*model.BatchFile, *model.BatchData, error) {
	batchFile, err := ReadBatchFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(batchFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(batchFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(batchFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var batch model.BatchData
	if err := json.Unmarshal(plaintext, &batch); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal batch data: %w", err)
	}

	return batchFile, &batch, nil
}

// ReadBatchFile reads the unencrypted header of a .ccb file
func ReadBatchFile(filePath string) (*model.BatchFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var batchFile model.BatchFile
	if err := json.Unmarshal(fileData, &batchFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch file: %w", err)
	}

	return &batchFile, nil
}
