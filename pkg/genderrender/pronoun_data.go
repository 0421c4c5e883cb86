package genderrender

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// IndividualPronounData maps attribute names to values for one person.
type IndividualPronounData map[string]string

// PronounData maps ids to individual pronoun data. Data given for a single unnamed
// person is stored under the empty id.
type PronounData map[string]IndividualPronounData

// IsIndividual reports whether p describes one unnamed person.
func (p PronounData) IsIndividual() bool {
	_, ok := p[""]
	return ok && len(p) == 1
}

// IDs returns the ids of p in sorted order.
func (p PronounData) IDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of p.
func (p PronounData) Clone() PronounData {
	if p == nil {
		return nil
	}
	c := make(PronounData, len(p))
	for id, idpd := range p {
		c[id] = idpd.Clone()
	}
	return c
}

// Clone returns a copy of p.
func (p IndividualPronounData) Clone() IndividualPronounData {
	if p == nil {
		return nil
	}
	c := make(IndividualPronounData, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// NewPronounData validates a decoded pronoun data tree and canonicalizes its keys.
// raw is either {attribute: value} for one person or {id: {attribute: value}}.
// All values must be strings. raw is not modified.
func NewPronounData(raw map[string]interface{}, diag DiagnosticSettings) (PronounData, error) {
	shaped, err := shapePronounData(raw)
	if err != nil {
		return nil, err
	}

	out := make(PronounData, len(shaped))
	for id, idpd := range shaped {
		canonical, err := canonicalizeIndividual(id, idpd, diag)
		if err != nil {
			return nil, err
		}
		out[id] = canonical
	}
	return out, nil
}

// canonical returns a copy of p with canonical attribute names and checked values.
// Data built by NewPronounData passes through unchanged.
func (p PronounData) canonical(diag DiagnosticSettings) (PronounData, error) {
	out := make(PronounData, len(p))
	for _, id := range p.IDs() {
		idpd, err := canonicalizeIndividual(id, p[id], diag)
		if err != nil {
			return nil, err
		}
		out[id] = idpd
	}
	return out, nil
}

func shapePronounData(raw map[string]interface{}) (PronounData, error) {
	allStrings, allMaps := true, true
	for _, v := range raw {
		switch v.(type) {
		case string:
			allMaps = false
		case map[string]interface{}:
			allStrings = false
		default:
			allStrings, allMaps = false, false
		}
	}

	switch {
	case allStrings:
		idpd := make(IndividualPronounData, len(raw))
		for k, v := range raw {
			idpd[k] = v.(string)
		}
		return PronounData{"": idpd}, nil
	case allMaps:
		pd := make(PronounData, len(raw))
		for id, v := range raw {
			if id == "" {
				return nil, newPronounDataError(ErrInvalidPronounData, "", "",
					"the empty id is reserved for pronoun data of a single person")
			}
			idpd := make(IndividualPronounData)
			for k, value := range v.(map[string]interface{}) {
				s, ok := value.(string)
				if !ok {
					return nil, newPronounDataError(ErrInvalidPronounData, id, k, "value must be a string, got %T", value)
				}
				idpd[k] = s
			}
			pd[id] = idpd
		}
		return pd, nil
	default:
		return nil, newPronounDataError(ErrInvalidPronounData, "", "",
			"pronoun data must map attributes to strings or ids to such maps")
	}
}

func canonicalizeIndividual(id string, idpd IndividualPronounData, diag DiagnosticSettings) (IndividualPronounData, error) {
	out := make(IndividualPronounData, len(idpd))
	source := make(map[string]string, len(idpd))

	// sorted keys keep error messages and diagnostics deterministic
	keys := make([]string, 0, len(idpd))
	for k := range idpd {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := idpd[key]
		if key == "" {
			return nil, newPronounDataError(ErrInvalidPronounData, id, key, "attribute names may not be empty")
		}

		name := canonicalPronounKey(key)
		if name == "" {
			name = customAttributeKey(key)
			diag.emit(UnknownProperty, "%q is not a known attribute; it is kept as the custom attribute %s, "+
				"write it as \"_%s\" or \"<%s>\" to mark it as custom", key, name, key, key)
		}

		if earlier, dup := source[name]; dup {
			return nil, newPronounDataError(ErrDoubledInformation, id, key,
				"%q and %q both define %s", earlier, key, name)
		}
		if !valueAllowed(name, value) {
			p, _ := findProperty(name)
			return nil, newPronounDataError(ErrInvalidInformation, id, key,
				"%q is not allowed, use one of %s", value, strings.Join(p.allowed, ", "))
		}
		source[name] = key
		out[name] = value
	}
	return out, nil
}

// canonicalPronounKey returns the canonical name of a pronoun data key, or "" when the
// key is neither a known attribute nor written as a custom one.
func canonicalPronounKey(key string) string {
	if name, ok := canonicalAttribute(key); ok {
		return name
	}
	if isCustomAttribute(key) {
		return customAttributeKey(customAttributeName(key))
	}
	if len(key) > 1 && strings.HasPrefix(key, "_") {
		return customAttributeKey(key[1:])
	}
	return ""
}

// ParsePronounDataJSON decodes and validates JSON pronoun data.
func ParsePronounDataJSON(data []byte, diag DiagnosticSettings) (PronounData, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, newPronounDataError(ErrInvalidPronounData, "", "", "not a JSON object: %v", err)
	}
	return NewPronounData(raw, diag)
}

// ParsePronounDataYAML decodes and validates YAML pronoun data. Scalars are taken as
// written, so `gender-addressing: false` needs no quoting.
func ParsePronounDataYAML(data []byte, diag DiagnosticSettings) (PronounData, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newPronounDataError(ErrInvalidPronounData, "", "", "not a YAML document: %v", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, newPronounDataError(ErrInvalidPronounData, "", "", "YAML pronoun data must be a mapping")
	}
	tree, ok := yamlTree(root).(map[string]interface{})
	if !ok {
		return nil, newPronounDataError(ErrInvalidPronounData, "", "", "YAML pronoun data must be a mapping")
	}
	return NewPronounData(tree, diag)
}

// yamlTree converts mappings to map[string]interface{} and scalars to strings.
// Anything else is returned as the node itself, which the shape check rejects.
func yamlTree(n *yaml.Node) interface{} {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value
	case yaml.AliasNode:
		return yamlTree(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = yamlTree(n.Content[i+1])
		}
		return m
	default:
		return n
	}
}

// Pronoun data file extensions.
var (
	pronounDataExtensions = []string{".grpd", ".idpd"}
	yamlExtensions        = []string{".yaml", ".yml"}
)

// LoadPronounDataFile reads pronoun data from path. ".yaml"/".yml" files are YAML,
// everything else is JSON. Files not ending in ".grpd", ".idpd", ".json" or a YAML
// extension are read anyway with an UnexpectedFileFormat diagnostic.
func LoadPronounDataFile(path string, diag DiagnosticSettings) (PronounData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WithContext(err, "read pronoun data", map[string]interface{}{"path": path})
	}

	ext := strings.ToLower(filepath.Ext(path))
	if hasExtension(ext, yamlExtensions) {
		pd, err := ParsePronounDataYAML(data, diag)
		return pd, WithContext(err, "parse pronoun data", map[string]interface{}{"path": path})
	}
	if !hasExtension(ext, pronounDataExtensions) && ext != ".json" {
		diag.emit(UnexpectedFileFormat, "%s does not end in %s; reading it as JSON pronoun data",
			path, strings.Join(pronounDataExtensions, " or "))
	}
	pd, err := ParsePronounDataJSON(data, diag)
	return pd, WithContext(err, "parse pronoun data", map[string]interface{}{"path": path})
}

func hasExtension(ext string, list []string) bool {
	for _, e := range list {
		if ext == e {
			return true
		}
	}
	return false
}
