package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/theapemachine/conductor-go/pkg/errors"
)

/*
RPCClient is a minimal JSON-RPC 2.0 client over HTTP. The bearer token, if
any, is supplied once at construction and attached to every request.
*/
type RPCClient struct {
	URL    string
	Token  string
	Client *http.Client

	nextID int
}

func NewRPCClient(url string) *RPCClient {
	return &RPCClient{
		URL:    url,
		Client: &http.Client{},
		nextID: 1,
	}
}

// WithToken sets the bearer token used to authenticate requests.
func (c *RPCClient) WithToken(token string) *RPCClient {
	c.Token = token
	return c
}

/*
Call sends a single JSON-RPC request and unmarshals the "result" field into
the caller-provided struct. Transport failures come back as
*errors.CommunicationError, malformed envelopes as *errors.ProtocolError and
remote error objects as *errors.RpcError.
*/
func (c *RPCClient) Call(
	ctx context.Context,
	method string,
	params any,
	result any,
) error {
	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	payload := RPCRequest{
		JSONRPC: "2.0",
		ID:      mustMarshalID(c.nextID),
		Method:  method,
	}
	c.nextID++

	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return err
		}
		payload.Params = b
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))

	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(httpReq)

	if err != nil {
		return &errors.CommunicationError{Op: method, URL: c.URL, Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &errors.ProtocolError{Op: method, Reason: "authentication rejected by remote agent"}
	}

	var rpcResp RPCResponse

	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return &errors.ProtocolError{Op: method, Reason: err.Error()}
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if result != nil {
		// Marshal the "result" field back into the user-provided struct.
		b, err := json.Marshal(rpcResp.Result)
		if err != nil {
			return &errors.ProtocolError{Op: method, Reason: err.Error()}
		}
		if err := json.Unmarshal(b, result); err != nil {
			return &errors.ProtocolError{Op: method, Reason: err.Error()}
		}
	}

	return nil
}

func mustMarshalID(v int) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
