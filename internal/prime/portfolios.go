package prime

import (
	"context"
	"fmt"

	"prime-deposit-addresses-go/internal/models"

	"github.com/coinbase-samples/prime-sdk-go/client"
	"github.com/coinbase-samples/prime-sdk-go/credentials"
	"github.com/coinbase-samples/prime-sdk-go/portfolios"
)

// PortfolioService looks up portfolios through the Prime SDK. It only needs
// the access key, passphrase and signing key, so it can be used to find the
// portfolio id a WalletClient requires.
type PortfolioService struct {
	portfoliosSvc portfolios.PortfoliosService
}

func NewPortfolioService(creds *credentials.Credentials, cfg models.PrimeConfig) (*PortfolioService, error) {
	if creds == nil || creds.AccessKey == "" || creds.Passphrase == "" || creds.SigningKey == "" {
		return nil, fmt.Errorf("%w: access key, passphrase and signing key are required", ErrConfiguration)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	httpClient, err := NewHTTPClient(timeout)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}

	restClient := client.NewRestClient(creds, httpClient)

	return &PortfolioService{
		portfoliosSvc: portfolios.NewPortfoliosService(restClient),
	}, nil
}

func (s *PortfolioService) ListPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	response, err := s.portfoliosSvc.ListPortfolios(ctx, &portfolios.ListPortfoliosRequest{})
	if err != nil {
		return nil, fmt.Errorf("unable to list portfolios: %w", err)
	}

	portfolioList := make([]models.Portfolio, len(response.Portfolios))
	for i, p := range response.Portfolios {
		portfolioList[i] = models.Portfolio{
			Id:   p.Id,
			Name: p.Name,
		}
	}

	return portfolioList, nil
}

// FindPortfolio returns the portfolio with the given display name
func (s *PortfolioService) FindPortfolio(ctx context.Context, name string) (*models.Portfolio, error) {
	portfolioList, err := s.ListPortfolios(ctx)
	if err != nil {
		return nil, err
	}

	for _, portfolio := range portfolioList {
		if portfolio.Name == name {
			return &portfolio, nil
		}
	}

	return nil, fmt.Errorf("portfolio %q: %w", name, ErrNotFound)
}
