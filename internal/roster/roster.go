// Package roster provides the read-only list of professionals
// available for appointment assignment. The roster is an external
// collaborator maintained outside this service; it is consumed from a
// YAML file and never written.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Professional is one bookable clinician.
type Professional struct {
	Name      string `yaml:"name" json:"name"`
	Specialty string `yaml:"specialty,omitempty" json:"specialty,omitempty"`
}

type rosterFile struct {
	Professionals []Professional `yaml:"professionals"`
}

// Roster holds the loaded professional list.
type Roster struct {
	professionals []Professional
}

// Load parses the roster file. A missing file yields an empty roster,
// not an error: the clinic can run before the roster is provisioned.
func Load(path string) (*Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Roster{}, nil
		}
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var rf rosterFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	return &Roster{professionals: rf.Professionals}, nil
}

// Professionals returns the full roster in file order.
func (r *Roster) Professionals() []Professional {
	return r.professionals
}

// Names returns just the professional names, for selection lists.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.professionals))
	for _, p := range r.professionals {
		names = append(names, p.Name)
	}
	return names
}
