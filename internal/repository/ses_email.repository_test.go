package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_emailRepositoryHandler_SendEmail(t *testing.T) {
	region, from, to := os.Getenv("AWS_SES_REGION_NAME"), os.Getenv("FROM_ADDRESS"), os.Getenv("TEST_EMAIL_TO")
	if region == "" || from == "" || to == "" {
		t.Skip("SES test settings not set")
	}

	ctx := context.Background()
	handler, err := NewEmailRepository(ctx, region, from)
	require.NoError(t, err)

	err = handler.SendEmail(ctx, to, "Test Email from trendalgo", "<html><body><p>test</p></body></html>")
	require.NoError(t, err)
}
