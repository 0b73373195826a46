package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	formbind "github.com/goliatone/go-formbind"
	"github.com/goliatone/go-formbind/components/nullform"
	"github.com/goliatone/go-formbind/internal/formdata"
	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/client"
	"github.com/goliatone/go-formbind/pkg/manifest"
)

// How a prompted parameter is sent.
const (
	modeValue   = "value"
	modeAbsent  = "absent"
	modeNoValue = "no value"
	modeEmpty   = "empty"
)

var submitModes = []string{modeValue, modeAbsent, modeNoValue, modeEmpty}

func newSubmitCmd(a *app, driver PromptDriver) *cobra.Command {
	var (
		location string
		baseURL  string
		validate bool
	)
	cmd := &cobra.Command{
		Use:   "submit <operation>",
		Short: "Prompt for each parameter of an operation and submit it",
		Long: `Prompts for every parameter of the operation and sends the request to the
configured client.base_url. Each parameter can be sent with a value, left out,
sent without a value (a bare key), or sent as an empty value.

The null form endpoints are always available as null-bean and null-direct.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if location == "" {
				location = a.cfg.Manifest.Path
			}
			if baseURL == "" {
				baseURL = a.cfg.Client.BaseURL
			}
			if baseURL == "" {
				return fmt.Errorf("submit: client.base_url is not configured")
			}

			op, err := findOperation(ctx, location, args[0])
			if err != nil {
				return err
			}

			d := driver
			if d == nil {
				d = surveyDriver{}
			}
			req, err := promptRequest(ctx, d, op, validate)
			if err != nil {
				return err
			}

			c, err := client.New(baseURL,
				client.WithHTTPClient(&http.Client{Timeout: a.cfg.Client.Timeout}),
				client.WithRetry(a.cfg.Client.RetryAttempts, a.cfg.Client.RetryDelay),
				client.WithProperties(a.cfg.Properties()),
				client.WithHeaders(req.headers...),
				client.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			return send(ctx, cmd.OutOrStdout(), c, req)
		},
	}
	cmd.Flags().StringVarP(&location, "manifest", "m", "", "manifest or OpenAPI location (overrides manifest.path)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "server base URL (overrides client.base_url)")
	cmd.Flags().BoolVar(&validate, "validate", true, "reject values that do not coerce to the parameter kind")
	return cmd
}

func findOperation(ctx context.Context, location, id string) (manifest.Operation, error) {
	m := nullform.Manifest()
	if location != "" {
		loaded, err := formbind.LoadManifest(ctx, location)
		if err != nil {
			return manifest.Operation{}, err
		}
		if err := m.Merge(loaded); err != nil {
			return manifest.Operation{}, err
		}
	}
	op, ok := m.Operation(id)
	if !ok {
		return manifest.Operation{}, fmt.Errorf("submit: unknown operation %q (known: %s)", id, strings.Join(m.IDs(), ", "))
	}
	return op, nil
}

type submission struct {
	method  client.Method
	body    []byte
	headers []client.HeaderParam
}

func promptRequest(ctx context.Context, d PromptDriver, op manifest.Operation, validate bool) (submission, error) {
	var (
		form, query binding.FieldSet
		headers     []client.HeaderParam
		hasForm     bool
	)

	for _, p := range op.Params {
		if p.Source == binding.SourceForm {
			hasForm = true
		}
		mode, err := promptMode(ctx, d, p)
		if err != nil {
			return submission{}, err
		}

		var values []string
		switch mode {
		case modeAbsent:
			continue
		case modeEmpty:
			values = []string{""}
		case modeValue:
			raw, err := d.Input(ctx, InputConfig{
				Message:   p.Name,
				Help:      valueHelp(p),
				Validator: valueValidator(p, validate),
			})
			if err != nil {
				return submission{}, err
			}
			values = splitValues(p, raw)
		}

		switch p.Source {
		case binding.SourceQuery:
			addField(&query, p.Name, values)
		case binding.SourceHeader:
			value := strings.Join(values, ",")
			headers = append(headers, client.Computed(p.Name, func(context.Context, string) (string, error) {
				return value, nil
			}))
		default:
			addField(&form, p.Name, values)
		}
	}

	sub := submission{
		method: client.Method{
			Name:       op.ID,
			HTTPMethod: op.Method,
			Path:       op.Path,
			RawQuery:   formdata.EncodeURLEncoded(query),
		},
		headers: headers,
	}
	if hasForm {
		sub.method.ContentType = formdata.MediaTypeURLEncoded
		sub.body = []byte(formdata.EncodeURLEncoded(form))
	}
	return sub, nil
}

func promptMode(ctx context.Context, d PromptDriver, p binding.Param) (string, error) {
	defaultIndex := 1
	if p.Required {
		defaultIndex = 0
	}
	idx, err := d.Select(ctx, SelectConfig{
		Message:      fmt.Sprintf("%s (%s from %s)", p.Name, p.Kind, p.Source),
		Options:      submitModes,
		DefaultIndex: defaultIndex,
		Help:         "absent leaves the field out, no value sends a bare key, empty sends key=",
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(submitModes) {
		return "", fmt.Errorf("submit: invalid choice for %s", p.Name)
	}
	return submitModes[idx], nil
}

func addField(set *binding.FieldSet, name string, values []string) {
	set.Mark(name)
	for _, v := range values {
		set.Add(name, v)
	}
}

func splitValues(p binding.Param, raw string) []string {
	if !p.Multi {
		return []string{raw}
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func valueHelp(p binding.Param) string {
	if p.Multi {
		return fmt.Sprintf("comma separated %s values", p.Kind)
	}
	return fmt.Sprintf("a %s value", p.Kind)
}

func valueValidator(p binding.Param, enabled bool) func(string) error {
	if !enabled {
		return nil
	}
	return func(raw string) error {
		for _, v := range splitValues(p, raw) {
			if _, err := binding.Coerce(p.Kind, v); err != nil {
				return err
			}
		}
		return nil
	}
}

func send(ctx context.Context, out io.Writer, c *client.Client, sub submission) error {
	res, err := c.Send(ctx, sub.method, sub.body)
	if err != nil {
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			fmt.Fprintf(out, "%s rejected: %s\n", sub.method.Name, statusErr.Status)
		}
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("submit: read response: %w", err)
	}
	fmt.Fprintf(out, "%s\n%s\n", res.Status, strings.TrimSpace(string(data)))
	return nil
}
