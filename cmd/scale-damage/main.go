// Package main provides the scale-damage tool that rebalances weapon
// content by multiplying the damage field of every weapon YAML file in a
// directory. Field order and comments in the files are preserved.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

func main() {
	dir := flag.String("dir", "content/weapons", "directory of weapon YAML files")
	factor := flag.Float64("factor", 0, "damage multiplier; must be > 0")
	flag.Parse()

	if *factor <= 0 {
		fmt.Fprintln(os.Stderr, "usage: scale-damage -dir <dir> -factor <multiplier>, factor must be > 0")
		os.Exit(1)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading %q: %v\n", *dir, err)
		os.Exit(1)
	}

	updated := 0
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(*dir, entry.Name())
		changed, err := scaleFile(path, *factor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if changed {
			updated++
		}
	}
	fmt.Printf("files updated: %d\n", updated)
}

// scaleFile multiplies the damage value of the weapon in path by factor
// and rewrites the file in place. The scaled value is rounded and floored
// at 1. Files without a damage field are left untouched.
func scaleFile(path string, factor float64) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %q: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("parsing %q: %w", path, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return false, nil
	}
	mapping := doc.Content[0]

	damageNode := valueNode(mapping, "damage")
	if damageNode == nil {
		return false, nil
	}
	oldDamage, err := strconv.Atoi(damageNode.Value)
	if err != nil {
		return false, fmt.Errorf("%q: damage %q is not an integer", path, damageNode.Value)
	}
	newDamage := int(math.Round(float64(oldDamage) * factor))
	if newDamage < 1 {
		newDamage = 1
	}
	damageNode.Value = strconv.Itoa(newDamage)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return false, fmt.Errorf("encoding %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return false, fmt.Errorf("encoding %q: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("writing %q: %w", path, err)
	}

	name := scalarValue(mapping, "id")
	if name == "" {
		name = filepath.Base(path)
	}
	fmt.Printf("%s: %d -> %d\n", name, oldDamage, newDamage)
	return true, nil
}

// valueNode returns the value node paired with key in a YAML mapping, or
// nil when the key is absent.
func valueNode(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// scalarValue returns the scalar paired with key, or the empty string.
func scalarValue(mapping *yaml.Node, key string) string {
	if n := valueNode(mapping, key); n != nil {
		return n.Value
	}
	return ""
}
