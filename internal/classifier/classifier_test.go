package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imcoder44/FootprintX/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  domain.QueryType
	}{
		{"empty", "", domain.QueryTypeUnknown},
		{"whitespace only", "   ", domain.QueryTypeUnknown},
		{"bare eleven digits", "12345678901", domain.QueryTypePhone},
		{"international", "+14155552671", domain.QueryTypePhone},
		{"two digits", "12", domain.QueryTypePhone},
		{"leading zero ten digits", "0123456789", domain.QueryTypePhone},
		{"single digit", "7", domain.QueryTypeUnknown},
		{"too long", "1234567890123456", domain.QueryTypeUnknown},
		{"email", "a@b.com", domain.QueryTypeEmail},
		{"email mixed case", "  Test@Example.COM ", domain.QueryTypeEmail},
		{"ip", "192.168.1.1", domain.QueryTypeIP},
		{"ip out of range digits still ip", "999.999.999.999", domain.QueryTypeIP},
		{"name", "Jane Doe", domain.QueryTypeName},
		{"single word name", "alice", domain.QueryTypeName},
		{"symbols", "not a valid query!!", domain.QueryTypeUnknown},
		{"at without dot", "user@localhost", domain.QueryTypeUnknown},
		{"three octets", "10.0.0", domain.QueryTypeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.query))
		})
	}
}

func TestClassifyPhoneWinsTieBreak(t *testing.T) {
	// Rules are evaluated in order; anything that already matches the phone
	// pattern never reaches the email or ip rules.
	for _, q := range []string{"1234567890", "+4420794601", "123456789012345"} {
		assert.Equal(t, domain.QueryTypePhone, Classify(q), q)
	}
	// Contains '@' and '.' but also looks like an address: email wins over ip.
	assert.Equal(t, domain.QueryTypeEmail, Classify("1.2.3.4@x"))
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, domain.QueryTypeEmail, Classify("test@example.com"))
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jane doe", Normalize("  Jane Doe\t"))
}
