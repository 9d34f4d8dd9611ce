package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"docsite/internal/model"
	repoMocks "docsite/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)

		res, err := newTestDocumentService(mRepo).Search(ctx, "   ", "en")

		require.NoError(t, err)
		assert.Empty(t, res)
		mRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("escapes wildcards and builds snippets", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Search", ctx, `%getting%`, "en", 20).Return([]model.Document{
			{ID: 1, Title: "Getting Started", Content: "Welcome", Slug: "getting-started", Published: true, CreatedAt: time.Now()},
			{ID: 2, Title: "FAQ", Content: "After getting the binary, run it.", Slug: "faq", Published: true},
		}, nil)

		res, err := newTestDocumentService(mRepo).Search(ctx, "Getting", "en")

		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "Getting Started", res[0].Snippet)
		assert.Equal(t, "After getting the binary, run it....", res[1].Snippet)
	})

	t.Run("like metacharacters are literal", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Search", ctx, `%100\% \_done\\%`, "", 20).Return([]model.Document{}, nil)

		_, err := newTestDocumentService(mRepo).Search(ctx, `100% _DONE\`, "")

		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := newTestDocumentService(new(repoMocks.MockDocumentRepository)).Search(ctx, "x", "de")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("a", 80) + " **needle** " + strings.Repeat("b", 300)

	got := snippet("Title", long, "needle")

	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, "needle")
	assert.NotContains(t, got, "*")
	// 200 characters minus the four stripped asterisks plus both ellipses
	assert.Equal(t, 200-4+6, len([]rune(got)))
}

func TestSnippet_StartsAtContentWhenMatchIsEarly(t *testing.T) {
	got := snippet("Other", "# Install\n\nRun the installer.", "installer")

	assert.Equal(t, "... Install\n\nRun the installer....", got)
}

func TestSnippet_Multibyte(t *testing.T) {
	content := strings.Repeat("あ", 60) + "検索" + strings.Repeat("い", 10)

	got := snippet("x", content, "検索")

	assert.True(t, strings.HasPrefix(got, "...あ"))
	assert.Contains(t, got, "検索")
}
