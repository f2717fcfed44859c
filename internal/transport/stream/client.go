package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/pkg/log"
)

// Frames carry a base64 snapshot alongside the diagnosis, so lines run
// far past bufio's default limit.
const maxFrameSize = 4 << 20

// Client reads newline-delimited JSON vitals frames from the monitoring
// backend. One Subscribe call covers one connection; reconnect policy
// belongs to the caller.
type Client struct {
	client *http.Client
	url    string
}

func NewClient(cfg *config.StreamConfig) *Client {
	return &Client{
		client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: cfg.ConnectTimeout,
			},
		},
		url: cfg.URL,
	}
}

// Subscribe connects and feeds decoded frames to handle until the
// stream ends. Malformed lines are skipped. It returns nil only when
// ctx is done; any other end of stream is an error so the caller can
// reconnect.
func (c *Client) Subscribe(ctx context.Context, handle func(core.VitalsFrame)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("User-Agent", core.PulseUserAgent)
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to connect to stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	logger := log.FromCtx(ctx)
	logger.Info().Str("url", c.url).Msg("connected to vitals stream")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var frame core.VitalsFrame
		if err := json.Unmarshal(line, &frame); err != nil {
			logger.Debug().Err(err).Msg("skipping malformed frame")
			continue
		}

		flattenAdvice(&frame)
		handle(frame)
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream read failed: %w", err)
	}
	return errors.New("stream closed by server")
}

// flattenAdvice strips markup some backends wrap the advice text in.
func flattenAdvice(frame *core.VitalsFrame) {
	if frame.Diagnosis == nil || !strings.Contains(frame.Diagnosis.AIAdvice, "<") {
		return
	}

	text, err := html2text.FromReader(strings.NewReader(frame.Diagnosis.AIAdvice), html2text.Options{
		OmitLinks:    false,
		PrettyTables: true,
	})
	if err != nil {
		return
	}
	frame.Diagnosis.AIAdvice = text
}
