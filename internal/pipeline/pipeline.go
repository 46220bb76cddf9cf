// Package pipeline hands located targets to the decrypt and upload stages.
// Those stages live outside this module and are consumed through interfaces.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"targetsearch/internal/search"
)

// Decrypter turns ciphertext into plaintext using key material
type Decrypter interface {
	Decrypt(ciphertext, key []byte) ([]byte, error)
}

// Uploader delivers plaintext to a remote collector
type Uploader interface {
	Upload(ctx context.Context, plaintext []byte) error
}

// Handoff names the two resolved files the downstream stages need
type Handoff struct {
	DataPath string
	KeyPath  string
}

// Resolve picks the data and key files out of a search report.
// It fails when either target was not found.
func Resolve(report *search.Report, dataName, keyName string) (Handoff, error) {
	paths, err := report.Require(dataName, keyName)
	if err != nil {
		return Handoff{}, err
	}
	return Handoff{DataPath: paths[0], KeyPath: paths[1]}, nil
}

// Deliver reads both files, decrypts the data with the key and uploads the result
func Deliver(ctx context.Context, h Handoff, dec Decrypter, up Uploader) error {
	if dec == nil || up == nil {
		return errors.New("pipeline: decrypter and uploader are required")
	}
	data, err := search.ReadTarget(h.DataPath)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	key, err := search.ReadTarget(h.KeyPath)
	if err != nil {
		return fmt.Errorf("read key: %w", err)
	}
	plaintext, err := dec.Decrypt(data, key)
	if err != nil {
		return fmt.Errorf("decrypt %s: %w", h.DataPath, err)
	}
	if err := up.Upload(ctx, plaintext); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	return nil
}
