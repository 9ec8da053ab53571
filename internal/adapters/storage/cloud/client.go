package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/platform/httpclient"
)

var (
	ErrCloudNotConfigured = errors.New("cloud records client not configured")
	ErrCloudUnauthorized  = errors.New("cloud records unauthorized")
	ErrCloudUpstream      = errors.New("cloud records upstream error")
)

const (
	serverErrNotFound     = "NOT_FOUND"
	serverErrRecordExists = "RECORD_EXISTS"
)

// Config del cliente del servicio de records (API estilo CloudKit Web Services).
type Config struct {
	BaseURL string
	Token   string

	// Header donde va el token. Default "X-Api-Key".
	TokenHeader string

	// Timeout <= 0: sin timeout, el request dura lo que dure el ctx.
	Timeout time.Duration

	Store events.StoreConfig

	// Opcional, para tests.
	Transport http.RoundTripper
}

// Client implementa events.RecordStore contra
// {base}/database/1/{container}/{environment}/{database}/records/...
type Client struct {
	http   *httpclient.Client
	prefix string
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.Store.ContainerID) == "" {
		return nil, ErrCloudNotConfigured
	}

	h := strings.TrimSpace(cfg.TokenHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	headers := map[string]string{}
	if tok := strings.TrimSpace(cfg.Token); tok != "" {
		headers[h] = tok
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Headers:   headers,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	env := strings.TrimSpace(cfg.Store.Environment)
	if env == "" {
		env = "development"
	}
	db := strings.TrimSpace(cfg.Store.Database)
	if db == "" {
		db = "public"
	}

	return &Client{
		http: hc,
		prefix: fmt.Sprintf("/database/1/%s/%s/%s/records",
			url.PathEscape(cfg.Store.ContainerID), url.PathEscape(env), url.PathEscape(db)),
	}, nil
}

type recordJSON struct {
	RecordName      string                       `json:"recordName"`
	RecordType      string                       `json:"recordType,omitempty"`
	RecordChangeTag string                       `json:"recordChangeTag,omitempty"`
	Fields          map[string]events.FieldValue `json:"fields,omitempty"`
	ServerErrorCode string                       `json:"serverErrorCode,omitempty"`
	Reason          string                       `json:"reason,omitempty"`
}

// recordsResponse se decodifica record por record: uno mal formado (p.ej.
// "fields":[1,2] o "recordName":42) no rompe la respuesta entera.
type recordsResponse struct {
	Records []json.RawMessage `json:"records"`
}

// decode devuelve los records que se pudieron interpretar y cuántos se descartaron.
func (r recordsResponse) decode() ([]recordJSON, int) {
	out := make([]recordJSON, 0, len(r.Records))
	dropped := 0
	for _, raw := range r.Records {
		var rj recordJSON
		if err := json.Unmarshal(raw, &rj); err != nil {
			dropped++
			continue
		}
		out = append(out, rj)
	}
	return out, dropped
}

type queryRequest struct {
	Query struct {
		RecordType string `json:"recordType"`
	} `json:"query"`
}

type lookupRequest struct {
	Records []recordJSON `json:"records"`
}

type operation struct {
	OperationType string     `json:"operationType"`
	Record        recordJSON `json:"record"`
}

type modifyRequest struct {
	Operations []operation `json:"operations"`
}

func (c *Client) Insert(ctx context.Context, r events.Record) error {
	return c.modify(ctx, operation{
		OperationType: "create",
		Record: recordJSON{
			RecordName: r.Name,
			RecordType: r.Kind,
			Fields:     r.Fields,
		},
	})
}

func (c *Client) QueryAll(ctx context.Context, kind string) ([]events.Record, error) {
	var req queryRequest
	req.Query.RecordType = kind

	var resp recordsResponse
	if err := c.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	recs, _ := resp.decode()
	out := make([]events.Record, 0, len(recs))
	for _, rj := range recs {
		if rj.ServerErrorCode != "" {
			continue
		}
		out = append(out, toRecord(rj))
	}
	return out, nil
}

func (c *Client) Lookup(ctx context.Context, name string) (events.Record, error) {
	var resp recordsResponse
	if err := c.post(ctx, "/lookup", lookupRequest{Records: []recordJSON{{RecordName: name}}}, &resp); err != nil {
		return events.Record{}, err
	}
	if len(resp.Records) == 0 {
		return events.Record{}, events.ErrRecordNotFound
	}

	var rj recordJSON
	if err := json.Unmarshal(resp.Records[0], &rj); err != nil {
		return events.Record{}, fmt.Errorf("%w: malformed lookup record: %v", ErrCloudUpstream, err)
	}
	if err := serverError(rj); err != nil {
		return events.Record{}, err
	}
	return toRecord(rj), nil
}

// ReplaceFields usa forceUpdate: no hay resolución de conflictos por change tag.
func (c *Client) ReplaceFields(ctx context.Context, handle string, fields map[string]events.FieldValue) error {
	return c.modify(ctx, operation{
		OperationType: "forceUpdate",
		Record: recordJSON{
			RecordName: handle,
			Fields:     fields,
		},
	})
}

func (c *Client) Delete(ctx context.Context, handle string) error {
	return c.modify(ctx, operation{
		OperationType: "forceDelete",
		Record:        recordJSON{RecordName: handle},
	})
}

func (c *Client) modify(ctx context.Context, op operation) error {
	var resp recordsResponse
	if err := c.post(ctx, "/modify", modifyRequest{Operations: []operation{op}}, &resp); err != nil {
		return err
	}
	recs, dropped := resp.decode()
	if dropped > 0 {
		return fmt.Errorf("%w: malformed modify response", ErrCloudUpstream)
	}
	for _, rj := range recs {
		if err := serverError(rj); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	err := c.http.DoJSON(ctx, http.MethodPost, c.prefix+path, in, out)
	if err == nil {
		return nil
	}

	switch st := httpclient.StatusCode(err); {
	case st == http.StatusUnauthorized || st == http.StatusForbidden:
		return ErrCloudUnauthorized
	case st != 0:
		return fmt.Errorf("%w: status=%d", ErrCloudUpstream, st)
	default:
		return fmt.Errorf("%w: %v", ErrCloudUpstream, err)
	}
}

func serverError(rj recordJSON) error {
	switch rj.ServerErrorCode {
	case "":
		return nil
	case serverErrNotFound:
		return events.ErrRecordNotFound
	case serverErrRecordExists:
		return events.ErrDuplicateIdentifier
	default:
		return fmt.Errorf("%w: %s %s", ErrCloudUpstream, rj.ServerErrorCode, rj.Reason)
	}
}

func toRecord(rj recordJSON) events.Record {
	fields := rj.Fields
	if fields == nil {
		fields = map[string]events.FieldValue{}
	}
	return events.Record{
		Kind:   rj.RecordType,
		Name:   rj.RecordName,
		Handle: rj.RecordName,
		Fields: fields,
	}
}
