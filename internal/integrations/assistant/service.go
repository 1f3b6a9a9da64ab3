package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

// AssistantService proxies prompts to the upstream LLM endpoint. Responses
// are never trusted raw; the handler runs them through the validation pass
// before returning them to clients.
type AssistantService struct {
	baseURL string
	token   string
}

func NewAssistantService() *AssistantService {
	_ = godotenv.Load()

	return &AssistantService{
		baseURL: os.Getenv("ASSISTANT_BASE_URL"),
		token:   os.Getenv("ASSISTANT_API_TOKEN"),
	}
}

func (s *AssistantService) SuggestComponents(req SuggestRequest) (*SuggestResponse, error) {
	var response SuggestResponse
	if err := s.post("/v1/components/suggest", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *AssistantService) Chat(req ChatRequest) (*ChatResponse, error) {
	var response ChatResponse
	if err := s.post("/v1/machines/chat", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *AssistantService) post(path string, payload interface{}, out interface{}) error {
	if s.baseURL == "" {
		return fmt.Errorf("assistant is not configured")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", s.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("assistant returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
