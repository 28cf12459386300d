package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

const defaultPitch = "Introducing the Horizon card: 0% APR for 12 months, 2% cash back on groceries and no annual fee."

var defaultPersonas = []models.Persona{
	{Name: "Alice", Age: 34, Occupation: "Nurse", Location: "Columbus, Ohio", Income: "$55k", Personality: "Cautious, reads the fine print", SpendingHabits: "Saver, pays balance in full"},
	{Name: "Marcus", Age: 23, Occupation: "Barista", Location: "Austin, Texas", Income: "$28k", Personality: "Optimistic, trend-driven", SpendingHabits: "Impulse buyer, carries a balance"},
	{Name: "Priya", Age: 47, Occupation: "Software Architect", Location: "Seattle, Washington", Income: "$190k", Personality: "Analytical, skeptical of marketing", SpendingHabits: "Points maximizer"},
}

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			// Simulations can take a while on the model side.
			Timeout: 3 * time.Minute,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "Base URL of the service")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, simulate, a2a, custom")
	pitch := flag.String("pitch", "", "Campaign pitch (for custom test)")
	personasFile := flag.String("personas", "", "JSON file with a persona array (for custom test, optional)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Synthetic Focus Group - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		exitOnFailure(client.testHealthCheck())
	case "agent-card":
		exitOnFailure(client.testAgentCard())
	case "simulate":
		exitOnFailure(client.testSimulation())
	case "a2a":
		exitOnFailure(client.testA2A())
	case "custom":
		if *pitch == "" {
			printError("Campaign pitch is required for custom test. Use -pitch flag")
			os.Exit(1)
		}
		personas := defaultPersonas
		if *personasFile != "" {
			loaded, err := loadPersonas(*personasFile)
			if err != nil {
				printError(err.Error())
				os.Exit(1)
			}
			personas = loaded
		}
		exitOnFailure(client.testCustomSimulation(models.SimulationRequest{CampaignPitch: *pitch, Personas: personas}))
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, simulate, a2a, custom")
		os.Exit(1)
	}
}

func exitOnFailure(ok bool) {
	if !ok {
		os.Exit(1)
	}
}

func loadPersonas(path string) ([]models.Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read personas file: %w", err)
	}
	var personas []models.Persona
	if err := json.Unmarshal(data, &personas); err != nil {
		return nil, fmt.Errorf("failed to parse personas file: %w", err)
	}
	return personas, nil
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Empty Personas", tc.testEmptyPersonas},
		{"Simulation", tc.testSimulation},
		{"A2A Simulation", tc.testA2A},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	url := fmt.Sprintf("%s/.well-known/agent.json", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "url", "version", "capabilities", "skills"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testEmptyPersonas() bool {
	printTestHeader("Testing Empty Persona List")

	status, body, err := tc.postJSON("/api/simulate", models.SimulationRequest{CampaignPitch: defaultPitch, Personas: []models.Persona{}})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusInternalServerError {
		printError(fmt.Sprintf("Expected status 500, got %d", status))
		return false
	}

	var errResp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Detail == "" {
		printError(fmt.Sprintf("Expected a detail message, got: %s", string(body)))
		return false
	}

	printSuccess(fmt.Sprintf("Rejected with detail: %s", errResp.Detail))
	return true
}

func (tc *TestClient) testSimulation() bool {
	return tc.testCustomSimulation(models.SimulationRequest{CampaignPitch: defaultPitch, Personas: defaultPersonas})
}

func (tc *TestClient) testCustomSimulation(req models.SimulationRequest) bool {
	printTestHeader("Testing Focus Group Simulation")
	fmt.Printf("%sCampaign Pitch:%s %s\n", colorCyan, colorReset, req.CampaignPitch)
	fmt.Printf("%sPersonas:%s %d\n\n", colorCyan, colorReset, len(req.Personas))

	status, body, err := tc.postJSON("/api/simulate", req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var result models.SimulationResult
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	printSuccess("Simulation completed successfully")
	if total := result.Verdicts.Total(); total != len(req.Personas) {
		fmt.Printf("%sNote: verdicts add up to %d for %d persona(s)%s\n", colorYellow, total, len(req.Personas), colorReset)
	}

	status, report, err := tc.postJSON("/api/report", result)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Report rendering failed (status %d): %v", status, err))
		return false
	}

	fmt.Printf("\n%sReport:%s\n", colorGreen, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(string(report))
	fmt.Println(strings.Repeat("=", 80))
	return true
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Focus Group Endpoint")

	url := fmt.Sprintf("%s/a2a/focus-group", tc.baseURL)
	fmt.Printf("POST %s\n", url)

	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{"kind": "text", "text": defaultPitch},
					{"kind": "data", "data": defaultPersonas},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n", colorYellow, colorReset)
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return false
	}

	result, ok := response["result"].(map[string]interface{})
	if !ok {
		printError("Invalid result format")
		return false
	}

	status, ok := result["status"].(map[string]interface{})
	if !ok {
		printError("Invalid status format")
		return false
	}

	state, _ := status["state"].(string)
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("A2A simulation completed successfully")

	if artifacts, ok := result["artifacts"].([]interface{}); ok && len(artifacts) > 0 {
		fmt.Printf("\n%sArtifacts:%s %d\n", colorPurple, colorReset, len(artifacts))
	}
	return true
}

func (tc *TestClient) postJSON(path string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	url := tc.baseURL + path
	fmt.Printf("POST %s\n", url)

	resp, err := tc.client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
