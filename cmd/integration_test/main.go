package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vacantvectors/postcraft/internal/config"
	"github.com/vacantvectors/postcraft/internal/database"
)

func main() {
	// Load config to get DB URL
	cfg := config.Load()

	// Connect to DB
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// 1. Setup Test Data
	userID := uuid.New()
	datasetID := uuid.New()
	email := fmt.Sprintf("test-%s@example.com", userID.String())

	log.Printf("Seeding database with UserID: %s, DatasetID: %s", userID, datasetID)

	_, err = db.Pool().Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role)
		VALUES ($1, $2, $3, $4, 'member')
	`, userID, email, "Integration Test User", "hash")
	if err != nil {
		log.Fatalf("Failed to insert user: %v", err)
	}

	// Dataset seeded directly as ready so generation can use it immediately
	_, err = db.Pool().Exec(ctx, `
		INSERT INTO datasets (id, name, status, created_by)
		VALUES ($1, $2, 'ready', $3)
	`, datasetID, fmt.Sprintf("integration-%s", datasetID), userID)
	if err != nil {
		log.Fatalf("Failed to insert dataset: %v", err)
	}

	examples := []struct {
		text       string
		tags       []string
		engagement int
	}{
		{"Shipped my first production service today. The code review feedback made it twice as good.", []string{"Career"}, 120},
		{"Mentorship tip: ask your mentee what they tried before offering answers.", []string{"Mentorship", "Career"}, 85},
	}
	for i, ex := range examples {
		_, err = db.Pool().Exec(ctx, `
			INSERT INTO example_posts (dataset_id, position, text, tags, language, length, line_count, engagement)
			VALUES ($1, $2, $3, $4, 'English', 'Short', 1, $5)
		`, datasetID, i, ex.text, ex.tags, ex.engagement)
		if err != nil {
			log.Fatalf("Failed to insert example post: %v", err)
		}
	}

	// 2. Call the generation endpoint
	log.Println("Calling generate endpoint...")
	url := "http://localhost:8080/api/v1/posts/generate"
	payload := map[string]interface{}{
		"topic":      "Career",
		"length":     "Short",
		"language":   "English",
		"dataset_id": datasetID.String(),
	}
	jsonBody, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Generate valid JWT token
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour * 1).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+tokenString)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 401 {
		log.Fatal("Unauthorized. Need valid token.")
	}

	if resp.StatusCode != 200 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		log.Fatalf("Expected 200 OK, got %d. Body: %s", resp.StatusCode, buf.String())
	}

	var respData map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&respData)

	post, ok := respData["post"].(map[string]interface{})
	if !ok {
		log.Fatalf("Response missing post: %v", respData)
	}

	log.Printf("SUCCESS: Generated post %v", post["id"])
	log.Printf("Text:\n%s", post["text"])
	if warnings, ok := respData["warnings"]; ok && warnings != nil {
		log.Printf("Warnings: %v", warnings)
	}
}
