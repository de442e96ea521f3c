package table

import (
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/itohio/gontc/pkg/ntc"
)

//go:embed data/*.yaml
var dataFS embed.FS

// file is the on-disk table format.
type file struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

// Load decodes a YAML table from r.
func Load(r io.Reader) (*Table, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse lookup table: %w", err)
	}
	return New(f.Name, f.Entries)
}

// LoadFile decodes a YAML table from filename.
func LoadFile(filename string) (*Table, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup table: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

func loadEmbedded(name string) func() (*Table, error) {
	return sync.OnceValues(func() (*Table, error) {
		fh, err := dataFS.Open(name)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		return Load(fh)
	})
}

var ntcg16x103 = loadEmbedded("data/ntcg16x_103.yaml")

// ForType returns the built-in table for a part, or nil if it has none.
// Parts sharing a curve share the same *Table.
func ForType(t ntc.Type) *Table {
	switch t {
	case ntc.TypeNTCG163JFT103FT1S, ntc.TypeNTCG164JF103FT1S, ntc.TypeNTCG163JF103FT1S:
		tbl, err := ntcg16x103()
		if err != nil {
			log.Printf("Built-in lookup table for %s unavailable: %v", t, err)
			return nil
		}
		return tbl
	default:
		return nil
	}
}
