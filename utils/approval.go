package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// generateSecureCode generates a secure random code of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func generateSecureCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// SendGuardianEmail delivers an approval code to the guardian's inbox.
// Replace the body of this function with your actual mail provider integration.
func SendGuardianEmail(email, message string) error {
	// For now, we log the outgoing message.
	GetLogger().Sugar().Infof("Sending guardian email to %s: %s", email, message)
	return nil
}

// InitiateGuardianApproval generates a code, stores it in Redis with a
// 10-minute TTL keyed by learner and action, and emails it to the guardian.
func InitiateGuardianApproval(learnerID, action, subject, guardianEmail string) error {
	code, err := generateSecureCode(6)
	if err != nil {
		return fmt.Errorf("failed to generate approval code: %w", err)
	}
	ttl := 10 * time.Minute
	codeKey := fmt.Sprintf("approval:%s:%s", learnerID, action)

	ctx := context.Background()
	client := GetAuthCacheClient()
	if client == nil {
		return fmt.Errorf("auth cache client not initialized")
	}

	if err := client.Set(ctx, codeKey, code, ttl).Err(); err != nil {
		GetLogger().Error("Failed to cache approval code", zap.Error(err))
		return fmt.Errorf("failed to initiate guardian approval")
	}

	message := fmt.Sprintf("Your Questly approval code is: %s. It covers %q and expires in 10 minutes.", code, subject)
	if err := SendGuardianEmail(guardianEmail, message); err != nil {
		GetLogger().Error("Failed to send approval code", zap.Error(err))
		return fmt.Errorf("failed to send approval code")
	}

	GetLogger().Sugar().Infof("Sent approval code to %s for learner %s, action %s (expires in %v)", guardianEmail, learnerID, action, ttl)
	return nil
}

// VerifyGuardianApprovalCode retrieves the stored code from Redis and compares
// it to the provided one. If they match, it deletes the code from the cache.
func VerifyGuardianApprovalCode(learnerID, action, providedCode string) error {
	codeKey := fmt.Sprintf("approval:%s:%s", learnerID, action)
	ctx := context.Background()
	client := GetAuthCacheClient()
	if client == nil {
		return fmt.Errorf("auth cache client not initialized")
	}

	storedCode, err := client.Get(ctx, codeKey).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("approval code not found or expired")
		}
		return fmt.Errorf("failed to retrieve approval code: %w", err)
	}

	if storedCode != providedCode {
		return fmt.Errorf("approval code does not match")
	}

	// Delete the code after successful verification.
	if err := client.Del(ctx, codeKey).Err(); err != nil {
		GetLogger().Error("Failed to delete approval code after verification", zap.Error(err))
	}
	return nil
}
