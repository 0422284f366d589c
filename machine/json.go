package machine

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseJSON reads machines from a JSON document of the form
//
//	{"machines":[{"lights":".##.","buttons":[[3],[1,3]],"targets":[3,5,4,7]}]}
//
// A bare top-level array of machine objects is accepted as well. "lights" is
// optional; "targets" is required. Every machine is validated.
func ParseJSON(data []byte) ([]Machine, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("json: invalid document: %w", ErrSyntax)
	}
	doc := gjson.ParseBytes(data)
	list := doc
	if doc.IsObject() {
		list = doc.Get("machines")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("json: expected a machines array: %w", ErrSyntax)
	}

	var (
		out []Machine
		err error
	)
	list.ForEach(func(key, v gjson.Result) bool {
		var m Machine
		if m, err = machineFromJSON(v); err != nil {
			err = fmt.Errorf("json: machine %d: %w", key.Int(), err)
			return false
		}
		out = append(out, m)
		return true
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func machineFromJSON(v gjson.Result) (Machine, error) {
	if !v.IsObject() {
		return Machine{}, fmt.Errorf("expected object: %w", ErrSyntax)
	}
	var m Machine

	if l := v.Get("lights"); l.Exists() {
		if l.Type != gjson.String {
			return Machine{}, fmt.Errorf("lights: expected string: %w", ErrSyntax)
		}
		lights, err := parseLights(l.String())
		if err != nil {
			return Machine{}, fmt.Errorf("lights: %w", err)
		}
		m.Lights = lights
	}

	t := v.Get("targets")
	if !t.Exists() {
		return Machine{}, fmt.Errorf("missing targets: %w", ErrSyntax)
	}
	targets, err := readIntSlice(t)
	if err != nil {
		return Machine{}, fmt.Errorf("targets: %w", err)
	}
	m.Targets = targets

	if b := v.Get("buttons"); b.Exists() {
		if !b.IsArray() {
			return Machine{}, fmt.Errorf("buttons: expected array: %w", ErrSyntax)
		}
		for i, item := range b.Array() {
			button, err := readIntSlice(item)
			if err != nil {
				return Machine{}, fmt.Errorf("button %d: %w", i, err)
			}
			m.Buttons = append(m.Buttons, uniqueCounters(button))
		}
	}

	if err = m.Validate(); err != nil {
		return Machine{}, err
	}

	return m, nil
}

// readIntSlice converts a JSON array of integers; fractional or non-numeric
// items are syntax errors.
func readIntSlice(v gjson.Result) ([]int, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("expected array: %w", ErrSyntax)
	}
	arr := v.Array()
	out := make([]int, len(arr))
	for i, item := range arr {
		if item.Type != gjson.Number || item.Float() != float64(item.Int()) {
			return nil, fmt.Errorf("item %d %q: expected integer: %w", i, item.Raw, ErrSyntax)
		}
		out[i] = int(item.Int())
	}

	return out, nil
}
