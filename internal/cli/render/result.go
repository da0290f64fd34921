package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/trebuchet-org/chaindeploy/internal/usecase"
)

// ResultRenderer writes the deployment result map as JSON. Compact by
// default, 2-space indented when pretty is set.
type ResultRenderer struct {
	out    io.Writer
	pretty bool
}

// NewResultRenderer creates a result renderer.
func NewResultRenderer(out io.Writer, pretty bool) *ResultRenderer {
	return &ResultRenderer{out: out, pretty: pretty}
}

// Render serializes the address map to the output writer.
func (r *ResultRenderer) Render(result *usecase.DeployContractsResult) error {
	data, err := MarshalAddresses(result.Addresses, r.pretty)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// MarshalAddresses encodes the address map as JSON.
func MarshalAddresses(addresses map[string]string, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(addresses, "", "  ")
	}
	return json.Marshal(addresses)
}
