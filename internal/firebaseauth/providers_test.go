package firebaseauth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviders(t *testing.T) {
	tests := []struct {
		name        string
		list        string
		want        []ProviderID
		wantUnknown string
	}{
		{
			name: "empty list",
			list: "",
			want: nil,
		},
		{
			name: "single provider",
			list: "google",
			want: []ProviderID{ProviderGoogle},
		},
		{
			name: "keeps order and trims whitespace",
			list: " twitter, email ,github",
			want: []ProviderID{ProviderTwitter, ProviderEmail, ProviderGithub},
		},
		{
			name: "skips empty entries",
			list: "facebook,,google,",
			want: []ProviderID{ProviderFacebook, ProviderGoogle},
		},
		{
			name:        "unknown provider",
			list:        "twitter, bogus",
			wantUnknown: "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProviders(tt.list)

			if tt.wantUnknown != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownProvider))

				var unknown *UnknownProviderError
				require.True(t, errors.As(err, &unknown))
				assert.Equal(t, tt.wantUnknown, unknown.Name)
				assert.Contains(t, err.Error(), tt.wantUnknown)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProviderConstant(t *testing.T) {
	assert.Equal(t, "firebase.auth.EmailAuthProvider.PROVIDER_ID", ProviderEmail.Constant())
	assert.Equal(t, "firebase.auth.FacebookAuthProvider.PROVIDER_ID", ProviderFacebook.Constant())
	assert.Equal(t, "firebase.auth.GithubAuthProvider.PROVIDER_ID", ProviderGithub.Constant())
	assert.Equal(t, "firebase.auth.GoogleAuthProvider.PROVIDER_ID", ProviderGoogle.Constant())
	assert.Equal(t, "firebase.auth.TwitterAuthProvider.PROVIDER_ID", ProviderTwitter.Constant())
	assert.False(t, ProviderID("bogus").Valid())
}
