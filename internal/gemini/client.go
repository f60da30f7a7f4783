// Package gemini implements the document-understanding boundary on Google's
// Gemini API: structured profile extraction from ID card images, form-field
// mapping with normalized geometry, and the best-effort explain/ask/translate
// helpers.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"formsaathi/internal/models"
)

// DocumentAI is the abstract contract to the document-understanding
// collaborator. Handlers and tests depend on this, not on Gemini directly.
type DocumentAI interface {
	ExtractProfile(ctx context.Context, image []byte) (models.PartialProfile, string, error)
	MapFormFields(ctx context.Context, formImage []byte, profile models.UserProfile) ([]models.FieldOverlay, error)
	Explain(ctx context.Context, image []byte, language string) (string, error)
	Ask(ctx context.Context, image []byte, question, language string) (string, error)
	Translate(ctx context.Context, image []byte, language string) (string, error)
}

const defaultModel = "gemini-2.5-flash"

// Client talks to Gemini. A fresh API client is opened per call and closed
// with it, same as the rest of our Google API usage.
type Client struct {
	apiKey string
	model  string
}

func NewClient() (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{apiKey: apiKey, model: model}, nil
}

// generateJSON runs one image+prompt request in JSON response mode and
// returns the raw text of the first candidate.
func (c *Client) generateJSON(ctx context.Context, image []byte, prompt string) (string, error) {
	return c.generate(ctx, image, prompt, true)
}

func (c *Client) generate(ctx context.Context, image []byte, prompt string, jsonMode bool) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to init Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	if jsonMode {
		model.GenerationConfig = genai.GenerationConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", image), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		} else {
			sb.WriteString(fmt.Sprint(part))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("no text in Gemini response")
	}
	return text, nil
}

const extractPrompt = `You are an expert data extraction assistant. Extract personal information from this identity document image and return ONLY a JSON object.

Rules:
1. Fields: "documentType" (e.g. 'Aadhar Card', 'PAN Card', 'Driving License', 'Passport', 'Voter ID', 'Student ID'; use 'Document' if unknown), "fullName", "dateOfBirth" (DD/MM/YYYY), "gender", "guardianName" (Father's/Husband's/Guardian's name, often labeled S/O, W/O, D/O), "address", "phoneNumber", "email", "aadharNumber" (12 digits), "panNumber" (10 characters), "drivingLicenseNumber", "passportNumber", "voterIdNumber" (EPIC), "idNumber" (any other unique ID if the specific ones are absent).
2. Put any other visible labeled information NOT covered above (e.g. Blood Group, District, Issue Date, Validity) into "extraFields": a list of {"label": ..., "value": ...}.
3. If a field cannot be found, its value must be null. Do NOT repeat a specific ID number inside extraFields.
4. Your entire response must be ONLY the JSON object, no explanations before or after.`

// ExtractProfile reads one ID card image into a partial profile plus the
// detected document type label. All failures are ExtractionError.
func (c *Client) ExtractProfile(ctx context.Context, image []byte) (models.PartialProfile, string, error) {
	raw, err := c.generateJSON(ctx, image, extractPrompt)
	if err != nil {
		return models.PartialProfile{}, "", &ExtractionError{Err: err}
	}
	partial, docType, err := decodeExtraction(raw)
	if err != nil {
		return models.PartialProfile{}, "", &ExtractionError{Err: err}
	}
	return partial, docType, nil
}

const mapPromptTemplate = `Analyze this physical form image. Identify the blank fields where a user needs to write information.

Here is the User's Master Profile Data:
%s

For each identified field on the form:
1. Determine what information is asked.
2. INTELLIGENTLY MATCH it with the User Profile Data (e.g. form asks "PAN" -> panNumber, "Aadhar" -> aadharNumber, "Father's Name" -> guardianName; details in extraFields may also be used). If nothing matches, use an empty string.
3. Return "valueToFill" exactly as it should be written.
4. Provide "boundingBox" {"ymin","xmin","ymax","xmax"} for the blank space where the user should write, on a scale of 0 to 1000.

Respond with ONLY a JSON array of {"fieldName", "valueToFill", "boundingBox"} objects.`

// MapFormFields analyzes a blank form against the profile and returns the
// ordered overlays. Geometry outside the 0-1000 contract is rejected as a
// MappingError rather than passed through to rendering.
func (c *Client) MapFormFields(ctx context.Context, formImage []byte, p models.UserProfile) ([]models.FieldOverlay, error) {
	profileJSON, err := profileForPrompt(p)
	if err != nil {
		return nil, &MappingError{Err: err}
	}
	raw, err := c.generateJSON(ctx, formImage, fmt.Sprintf(mapPromptTemplate, profileJSON))
	if err != nil {
		return nil, &MappingError{Err: err}
	}
	overlays, err := decodeOverlays(raw)
	if err != nil {
		return nil, &MappingError{Err: err}
	}
	return overlays, nil
}

// languageName maps the UI language codes onto prompt wording.
func languageName(code string) string {
	switch code {
	case "hi":
		return "Hindi"
	case "bn":
		return "Bengali"
	default:
		return "English"
	}
}

// Explain summarizes what a form is for, in the given language.
func (c *Client) Explain(ctx context.Context, image []byte, language string) (string, error) {
	prompt := fmt.Sprintf("Analyze this image of a form. Explain briefly what this form is for and what key information is needed. Respond in %s. Keep it simple and under 50 words.", languageName(language))
	return c.generate(ctx, image, prompt, false)
}

// Ask answers a question about the form's visible content.
func (c *Client) Ask(ctx context.Context, image []byte, question, language string) (string, error) {
	prompt := fmt.Sprintf("Look at this form image. Answer the following question based on the form's visible content: %q. Respond in %s. Keep the answer concise.", question, languageName(language))
	return c.generate(ctx, image, prompt, false)
}

// Translate renders all visible text of the form in the target language as
// Markdown, preserving the document's structure.
func (c *Client) Translate(ctx context.Context, image []byte, language string) (string, error) {
	prompt := fmt.Sprintf(`Analyze this image of a form or document. Translate all the visible text into %s.

Format the output using Markdown: headers for titles, bold for field labels, tables for tabular data. Maintain the general structure of the document. Do not add conversational filler, just provide the translated content.`, languageName(language))
	return c.generate(ctx, image, prompt, false)
}
