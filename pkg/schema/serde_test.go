package schema_test

import (
	"context"
	"testing"

	"github.com/sanjibtex/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeProductViewV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeProductViewV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeProductViewV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierAndSubjectOpts", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductViewSchemaTextV1,
		).Return(schemaID, nil)

		_, err := schema.NewSerdeProductViewV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductViewSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeProductViewV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		viewValue1 := schema.ProductViewV1{
			ProductID: 42,
			UserID:    "testUserID",
			ViewedAt:  1756500000000,
		}

		encodedData, err := serde.Encode(viewValue1)
		require.NoError(t, err)

		var viewValue2 schema.ProductViewV1
		err = serde.Decode(encodedData, &viewValue2)
		require.NoError(t, err)

		assert.Equal(t, viewValue1, viewValue2)
	})
}

func TestSerdeSiteVisitV1(t *testing.T) {

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 7
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.SiteVisitSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeSiteVisitV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		visitValue1 := schema.SiteVisitV1{
			PageURL:   "/products/42",
			UserID:    "",
			VisitedAt: 1756500000000,
		}

		encodedData, err := serde.Encode(visitValue1)
		require.NoError(t, err)

		var visitValue2 schema.SiteVisitV1
		err = serde.Decode(encodedData, &visitValue2)
		require.NoError(t, err)

		assert.Equal(t, visitValue1, visitValue2)
	})
}
