package hubctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"pehlione.com/admin/internal/hubapi"
	"pehlione.com/admin/internal/modules/categories"
	"pehlione.com/admin/internal/modules/coupons"
	"pehlione.com/admin/internal/modules/products"
	"pehlione.com/admin/internal/modules/staff"
	"pehlione.com/admin/internal/wizard"
)

// Manifest is the file read by "hubctl apply". Items without an id are
// created, the rest are updated.
type Manifest struct {
	Items []Item `yaml:"items"`
}

type Item struct {
	Entity string    `yaml:"entity"`
	ID     string    `yaml:"id,omitempty"`
	Data   yaml.Node `yaml:"data"`
}

// ItemResult is the outcome of one manifest item.
type ItemResult struct {
	Index  int               `json:"index"`
	Entity string            `json:"entity"`
	Action string            `json:"action"`
	ID     string            `json:"id,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// decoder turns an item's data into a payload and runs every wizard step
// over it.
type decoder func(n *yaml.Node, creating bool) (any, wizard.FieldErrors, error)

type formInput interface {
	FormData() wizard.FormData
}

// checkInput is implemented by payloads whose server-side checks see more
// than the wizard form holds (coupon timestamps).
type checkInput interface {
	CheckData() wizard.FormData
}

func decodeWith[P formInput](schema func(creating bool) *wizard.Schema[P]) decoder {
	return func(n *yaml.Node, creating bool) (any, wizard.FieldErrors, error) {
		var in P
		if err := n.Decode(&in); err != nil {
			return nil, nil, err
		}
		data := in.FormData()
		if ci, ok := any(in).(checkInput); ok {
			data = ci.CheckData()
		}
		return in, schema(creating).ValidateAll(data), nil
	}
}

var decoders = map[string]decoder{
	"coupons":    decodeWith(func(bool) *wizard.Schema[coupons.Input] { return coupons.Form }),
	"categories": decodeWith(func(bool) *wizard.Schema[categories.Input] { return categories.Form }),
	"products":   decodeWith(func(bool) *wizard.Schema[products.Input] { return products.Form }),
	"staff": decodeWith(func(creating bool) *wizard.Schema[staff.Input] {
		if creating {
			return staff.CreateForm
		}
		return staff.EditForm
	}),
}

func Entities() []string {
	out := make([]string, 0, len(decoders))
	for k := range decoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return m, nil
}

// Apply validates every item first and then sends the valid ones. An
// invalid item does not stop the others.
func Apply(ctx context.Context, c *hubapi.Client, m Manifest, dryRun bool) []ItemResult {
	out := make([]ItemResult, len(m.Items))
	payloads := make([]any, len(m.Items))
	for i, it := range m.Items {
		res := ItemResult{Index: i, Entity: it.Entity, ID: it.ID, Action: "create"}
		if it.ID != "" {
			res.Action = "update"
		}

		if dec, ok := decoders[it.Entity]; !ok {
			res.Error = fmt.Sprintf("unknown entity %q", it.Entity)
		} else {
			payload, errs, err := dec(&m.Items[i].Data, it.ID == "")
			switch {
			case err != nil:
				res.Error = err.Error()
			case len(errs) > 0:
				res.Errors = errs
			default:
				payloads[i] = payload
			}
		}
		out[i] = res
	}

	for i := range out {
		if payloads[i] == nil {
			continue
		}
		if dryRun {
			out[i].Action += " (dry run)"
			continue
		}
		send(ctx, c, &out[i], payloads[i])
	}
	return out
}

// Failed reports whether any item was rejected.
func Failed(results []ItemResult) bool {
	for _, r := range results {
		if r.Error != "" || len(r.Errors) > 0 {
			return true
		}
	}
	return false
}

func send(ctx context.Context, c *hubapi.Client, r *ItemResult, payload any) {
	var (
		raw json.RawMessage
		err error
	)
	if r.ID == "" {
		raw, err = c.Create(ctx, r.Entity, payload)
	} else {
		raw, err = c.Update(ctx, r.Entity, r.ID, payload)
	}
	if err != nil {
		r.Error = err.Error()
		var ae *hubapi.APIError
		if errors.As(err, &ae) && len(ae.Fields) > 0 {
			r.Errors = ae.Fields
		}
		return
	}
	var saved struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(raw, &saved) == nil && saved.ID != "" {
		r.ID = saved.ID
	}
}
