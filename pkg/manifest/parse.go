package manifest

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the encoding from a file name. Anything that is not
// TOML or YAML is read as CSV, which covers remote URLs without extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// Parse reads a manifest in the format implied by name.
func Parse(name string, r io.Reader) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch DetectFormat(name) {
	case FormatTOML:
		m, err = ParseTOML(r)
	case FormatYAML:
		m, err = ParseYAML(r)
	default:
		m, err = ParseCSV(r)
	}
	if err != nil {
		return nil, err
	}
	m.Source = name
	return m, nil
}

// IsComment reports whether a manifest line is a comment: its first
// non-whitespace character is '#'.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

// ParseCSV reads the line-oriented format. Comment and blank lines never
// produce records. A malformed line becomes a record carrying
// MANIFEST_INVALID in Err, so the rest of the manifest is still installed.
// Only a failure to read the input fails the whole parse.
func ParseCSV(r io.Reader) (*Manifest, error) {
	logger := logging.GetLogger("manifest")
	m := &Manifest{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || IsComment(line) {
			continue
		}

		rec := parseLine(line, lineNo)
		if rec.Err != nil {
			logger.Warn().
				Err(rec.Err).
				Int("line", lineNo).
				Msg("Malformed manifest line, it will be reported as failed")
		} else if !isKnownTag(rec.RawTag) {
			logger.Warn().
				Int("line", lineNo).
				Str("tag", rec.RawTag).
				Str("identifier", rec.Identifier).
				Msg("Unknown tag, installing from the official repository")
		}

		m.Records = append(m.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "failed to read manifest")
	}

	return m, nil
}

// parseLine splits on the first two commas only; the annotation keeps any
// further commas.
func parseLine(line string, lineNo int) Record {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 2 {
		return Record{
			Tag:        TagOfficial,
			Identifier: strings.TrimSpace(line),
			Line:       lineNo,
			Err: errors.Newf(errors.ErrManifestInvalid, "line %d: expected tag,identifier,annotation", lineNo).
				WithDetail("line", lineNo),
		}
	}

	rec := Record{
		RawTag:     strings.TrimSpace(fields[0]),
		Identifier: strings.TrimSpace(fields[1]),
		Line:       lineNo,
	}
	rec.Tag = ParseTag(rec.RawTag)
	if len(fields) == 3 {
		rec.Annotation = fields[2]
	}
	if rec.Identifier == "" {
		rec.Err = errors.Newf(errors.ErrManifestInvalid, "line %d: empty identifier", lineNo).
			WithDetail("line", lineNo)
	}
	return rec
}

// structuredEntry is one package in the TOML or YAML encodings.
type structuredEntry struct {
	Tag     string `toml:"tag" yaml:"tag"`
	Name    string `toml:"name" yaml:"name"`
	Comment string `toml:"comment" yaml:"comment"`
}

type structuredManifest struct {
	Packages []structuredEntry `toml:"package" yaml:"packages"`
}

// ParseTOML reads [[package]] tables with tag, name and comment keys.
func ParseTOML(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "failed to read manifest")
	}
	var doc structuredManifest
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "invalid TOML manifest")
	}
	return fromStructured(doc)
}

// ParseYAML reads a packages: list with tag, name and comment keys.
func ParseYAML(r io.Reader) (*Manifest, error) {
	var doc structuredManifest
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrManifestInvalid, "invalid YAML manifest")
	}
	return fromStructured(doc)
}

// fromStructured never fails; entries without a name carry Err like
// malformed CSV lines.
func fromStructured(doc structuredManifest) (*Manifest, error) {
	m := &Manifest{Records: make([]Record, 0, len(doc.Packages))}
	for i, p := range doc.Packages {
		rec := Record{
			Tag:        ParseTag(p.Tag),
			RawTag:     p.Tag,
			Identifier: strings.TrimSpace(p.Name),
			Annotation: p.Comment,
		}
		if rec.Identifier == "" {
			rec.Err = errors.Newf(errors.ErrManifestInvalid, "package %d: empty name", i+1).
				WithDetail("index", i+1)
		}
		m.Records = append(m.Records, rec)
	}
	return m, nil
}
