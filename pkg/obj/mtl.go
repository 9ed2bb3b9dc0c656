package obj

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// Material is the subset of MTL the renderer uses.
type Material struct {
	Name       string
	Diffuse    [3]float32
	Specular   [3]float32
	Shininess  float32
	Opacity    float32
	DiffuseMap string // texture path relative to the material library
}

// DefaultMaterial is applied to groups whose material is missing.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		Diffuse:   [3]float32{0.8, 0.8, 0.8},
		Shininess: 16,
		Opacity:   1,
	}
}

// ParseMTL parses a material library. Statements it does not understand
// are skipped; malformed numbers fall back to the defaults.
func ParseMTL(data []byte) (map[string]*Material, error) {
	mats := make(map[string]*Material)
	var current *Material

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			current = DefaultMaterial()
			if len(fields) > 1 {
				current.Name = fields[1]
			}
			mats[current.Name] = current
			continue
		}
		if current == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			current.Diffuse = parseColor(fields[1:], current.Diffuse)
		case "Ks":
			current.Specular = parseColor(fields[1:], current.Specular)
		case "Ns":
			current.Shininess = parseScalar(fields[1:], current.Shininess)
		case "d":
			current.Opacity = parseScalar(fields[1:], current.Opacity)
		case "Tr":
			// Inverted opacity used by some exporters.
			current.Opacity = 1 - parseScalar(fields[1:], 1-current.Opacity)
		case "map_Kd":
			if len(fields) > 1 {
				// Texture paths may contain spaces.
				current.DiffuseMap = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mats, nil
}

func parseColor(fields []string, fallback [3]float32) [3]float32 {
	if len(fields) < 3 {
		return fallback
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return fallback
		}
		out[i] = float32(f)
	}
	return out
}

func parseScalar(fields []string, fallback float32) float32 {
	if len(fields) < 1 {
		return fallback
	}
	f, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return fallback
	}
	return float32(f)
}
