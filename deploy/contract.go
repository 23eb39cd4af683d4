package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

var (
	// ErrInvalidNEF is returned by ReadContract when contract.nef is malformed.
	ErrInvalidNEF = errors.New("invalid NEF")
	// ErrInvalidManifest is returned by ReadContract when manifest.json is malformed.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Contract groups compiled Neo contract ready to be deployed.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// ReadContract reads compiled contract from the given directory of the file
// system. The directory must contain contract.nef and manifest.json files
// produced by the neo-go compiler.
func ReadContract(fsys fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS always uses "/" as a separator, so filepath.Join() is not applicable.
	fNEF, err := fsys.Open(path.Join(dir, nefName))
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := fsys.Open(path.Join(dir, manifestName))
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return c, nil
}
