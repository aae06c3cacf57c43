// Package manifest reads the YAML run manifest: a declarative
// description of a model run and the budget extractions to perform,
// so driving code can be configuration instead of wiring.
package manifest

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/SGMOModeling/gowfm/domain/errors"
)

// Manifest declares one model run: the engine DLL, the model input
// files and the budget and zone budget files to extract afterward.
type Manifest struct {
	Engine   string        `yaml:"engine" json:"engine" validate:"required"`
	Log      string        `yaml:"log,omitempty" json:"log,omitempty"`
	Model    Model         `yaml:"model" json:"model"`
	Budgets  []BudgetSpec  `yaml:"budgets,omitempty" json:"budgets,omitempty" validate:"dive"`
	ZBudgets []ZBudgetSpec `yaml:"zbudgets,omitempty" json:"zbudgets,omitempty" validate:"dive"`
}

// Model names the input files of the run. RoutedStreams and Inquiry
// default to the engine's behavior when left unset.
type Model struct {
	Preprocessor  string `yaml:"preprocessor" json:"preprocessor" validate:"required"`
	Simulation    string `yaml:"simulation" json:"simulation" validate:"required"`
	RoutedStreams *bool  `yaml:"routed_streams,omitempty" json:"routed_streams,omitempty"`
	Inquiry       *bool  `yaml:"inquiry,omitempty" json:"inquiry,omitempty"`
}

// BudgetSpec selects data from one budget HDF file. An empty location
// list means every location; an empty column selector means every
// column.
type BudgetSpec struct {
	File      string  `yaml:"file" json:"file" validate:"required"`
	Locations []int   `yaml:"locations,omitempty" json:"locations,omitempty" validate:"omitempty,min=1,dive,min=1"`
	Columns   Columns `yaml:"columns,omitempty" json:"columns,omitempty"`
}

// ZBudgetSpec selects data from one zone budget HDF file. Zones come
// either from a zone definition file or inline ids.
type ZBudgetSpec struct {
	File      string `yaml:"file" json:"file" validate:"required"`
	ZonesFrom string `yaml:"zones_from,omitempty" json:"zones_from,omitempty"`
	Zones     []int  `yaml:"zones,omitempty" json:"zones,omitempty" validate:"omitempty,min=1,dive,min=1"`
}

// Columns is a column selector: the literal string "all" or a list of
// column names. The zero value selects all columns.
type Columns struct {
	All   bool
	Names []string
}

// UnmarshalYAML accepts either the scalar "all" or a sequence of
// column names.
func (c *Columns) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s != "all" {
			return fmt.Errorf("line %d: column selector must be \"all\" or a list, got %q", value.Line, s)
		}
		*c = Columns{All: true}
		return nil
	}
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	*c = Columns{Names: names}
	return nil
}

// MarshalYAML writes the selector back in the form it was read.
func (c Columns) MarshalYAML() (interface{}, error) {
	if c.All || c.Names == nil {
		return "all", nil
	}
	return c.Names, nil
}

// MarshalJSON mirrors MarshalYAML for JSON consumers.
func (c Columns) MarshalJSON() ([]byte, error) {
	v, _ := c.MarshalYAML()
	return json.Marshal(v)
}

// JSONSchema declares the selector as either the constant "all" or an
// array of strings.
func (Columns) JSONSchema() *jsonschema.Schema {
	all := &jsonschema.Schema{Type: "string", Const: "all"}
	list := &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{all, list}}
}

// validate is shared; building a validator per call is expensive.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml field names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load decodes and validates a manifest document. Unknown fields are
// rejected so typos fail loudly instead of silently defaulting.
func Load(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			err = fmt.Errorf("empty document")
		}
		return nil, &errors.ManifestError{Err: err}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile reads and decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// Validate checks the manifest's structural rules and returns a
// ManifestError naming the offending fields.
func (m *Manifest) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return &errors.ManifestError{Err: err}
	}
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = strings.TrimPrefix(fe.Namespace(), "Manifest.")
	}
	return &errors.ManifestError{Err: err, Fields: fields}
}

// Schema returns the manifest's JSON Schema, for editors and CI that
// lint run manifests.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&Manifest{})

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return out, nil
}
