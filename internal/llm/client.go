package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/auszug-dev/auszug/internal/model"
)

// instruction is the fixed prompt prepended to every statement text.
// The response schema mirrors the CSV columns so parsing stays flat.
const instruction = `You are given the plain text of a bank statement.
Extract every transaction it contains. Preserve the full description
detail, do not summarize or truncate descriptions.

Respond with a single JSON object of this exact form:
{"transactions": [{"date": "YYYY-MM-DD", "description": "...", "amount": -12.34, "currency": "EUR"}]}

Use ISO-8601 dates, negative amounts for debits, positive for credits,
and ISO 4217 currency codes. Respond with JSON only, no prose.`

// Client extracts structured transactions from statement text via the
// Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a Client for the given model. Temperature should
// be 0 for batch conversion so reruns stay comparable.
func NewClient(ctx context.Context, apiKey, modelName string, temperature float32) (*Client, error) {
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	m := gc.GenerativeModel(modelName)
	m.SetTemperature(temperature)
	m.ResponseMIMEType = "application/json"

	return &Client{client: gc, model: m}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// ExtractTransactions sends one statement text to the model and parses
// the structured response. Empty or whitespace-only text returns an
// empty result without a remote call. Any transport or parse failure
// is returned to the caller; the batch driver decides how to absorb it.
func (c *Client) ExtractTransactions(ctx context.Context, text string) ([]model.Transaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(instruction+"\n\n"+text))
	if err != nil {
		return nil, fmt.Errorf("generating extraction: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	raw, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}

	return ParseResponse(string(raw))
}

// response is the wire shape of the model's JSON reply.
type response struct {
	Transactions []candidate `json:"transactions"`
}

type candidate struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
}

// ParseResponse decodes the model's JSON reply into transactions,
// normalizing each description.
func ParseResponse(raw string) ([]model.Transaction, error) {
	var parsed response
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}

	var txns []model.Transaction
	for i, cand := range parsed.Transactions {
		amount, err := decimal.NewFromString(cand.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("transaction %d: parsing amount %q: %w", i, cand.Amount.String(), err)
		}
		txns = append(txns, model.Transaction{
			Date:        strings.TrimSpace(cand.Date),
			Description: NormalizeDescription(cand.Description),
			Amount:      amount,
			Currency:    strings.TrimSpace(cand.Currency),
		})
	}
	return txns, nil
}

// NormalizeDescription collapses line breaks and runs of whitespace to
// a single space and trims the ends.
func NormalizeDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripFences removes a markdown code fence the model sometimes wraps
// around JSON despite the MIME type hint.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
