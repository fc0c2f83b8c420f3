package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/marifyahya/test-backenddev/domain"
	"github.com/tidwall/gjson"
)

// MinDenomination is the smallest denomination reported by the billing filter
const MinDenomination = 100000

const billBodiesPath = "data.response.billdetails.#.body.0"

// BillingServiceImpl implements domain.BillingService over a JSON file on disk
type BillingServiceImpl struct {
	dataPath string
}

// NewBillingService creates a billing service reading from dataPath
func NewBillingService(dataPath string) domain.BillingService {
	return &BillingServiceImpl{dataPath: dataPath}
}

// Denominations implements domain.BillingService. The file is read on every call.
func (s *BillingServiceImpl) Denominations(ctx context.Context) ([]int, error) {
	data, err := os.ReadFile(s.dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read billing data: %w", err)
	}
	return FilterDenominations(data)
}

// FilterDenominations extracts "LABEL : amount" bodies and keeps amounts >= MinDenomination in document order
func FilterDenominations(data []byte) ([]int, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("billing data is not valid json")
	}

	denoms := []int{}
	for _, body := range gjson.GetBytes(data, billBodiesPath).Array() {
		_, amount, found := strings.Cut(body.String(), ":")
		if !found {
			slog.Debug("skipping bill detail without amount", slog.String("body", body.String()))
			continue
		}
		value, err := strconv.Atoi(strings.TrimSpace(amount))
		if err != nil {
			slog.Debug("skipping bill detail with non-numeric amount", slog.String("body", body.String()))
			continue
		}
		if value >= MinDenomination {
			denoms = append(denoms, value)
		}
	}
	return denoms, nil
}
