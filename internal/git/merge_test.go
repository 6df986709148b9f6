package git

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMerge(t *testing.T) {
	tests := []struct {
		name    string
		message string
		origin  Origin
		want    *Merge
	}{
		{
			name:    "github merge",
			message: "Merge pull request #3 from user/branch\n\nAdd feature\n",
			origin:  githubOrigin,
			want:    &Merge{Style: GitHubMerge, ID: "3", Message: "Add feature", Href: "https://github.com/user/repo/pull/3"},
		},
		{
			name:    "github squash",
			message: "Add feature (#4)\n\n* first commit\n* second commit\n",
			origin:  githubOrigin,
			want:    &Merge{Style: GitHubSquash, ID: "4", Message: "Add feature", Href: "https://github.com/user/repo/pull/4"},
		},
		{
			name:    "github squash without body",
			message: "Add feature (#5)",
			origin:  githubOrigin,
			want:    &Merge{Style: GitHubSquash, ID: "5", Message: "Add feature", Href: "https://github.com/user/repo/pull/5"},
		},
		{
			name:    "bitbucket merge",
			message: "Merged in feature/x (pull request #5)\n\nAdd bitbucket feature\n",
			origin:  bitbucketOrigin,
			want:    &Merge{Style: BitbucketMerge, ID: "5", Message: "Add bitbucket feature", Href: "https://bitbucket.org/user/repo/pull-requests/5"},
		},
		{
			name:    "gitlab merge",
			message: "Merge branch 'feature' into 'master'\n\nAdd gitlab feature\n\nSee merge request !6",
			origin:  gitlabOrigin,
			want:    &Merge{Style: GitLabMerge, ID: "6", Message: "Add gitlab feature", Href: "https://gitlab.com/user/repo/merge_requests/6"},
		},
		{
			name:    "standard merge beats squash",
			message: "Merge pull request #7 from user/branch (#8)\n\nTitle\n",
			origin:  githubOrigin,
			want:    &Merge{Style: GitHubMerge, ID: "7", Message: "Title", Href: "https://github.com/user/repo/pull/7"},
		},
		{
			name:    "plain commit",
			message: "Update README\n",
			origin:  githubOrigin,
			want:    nil,
		},
		{
			name:    "branch merge without request",
			message: "Merge branch 'master' into feature\n",
			origin:  gitlabOrigin,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMerge(tt.message, tt.origin, ""))
		})
	}
}

func TestDetectMerge_Template(t *testing.T) {
	merge := DetectMerge("Merge pull request #3 from user/branch\n\nAdd feature\n", githubOrigin, "https://ci.example.com/pr/{id}/view")
	require.NotNil(t, merge)
	assert.Equal(t, "https://ci.example.com/pr/3/view", merge.Href)
}

func TestMergeLink_UnknownHostUsesPull(t *testing.T) {
	origin := Origin{Hostname: "git.example.com", URL: "https://git.example.com/team/repo"}
	assert.Equal(t, "https://git.example.com/team/repo/pull/12", mergeLink("12", origin, ""))
}

func TestMergeStyle_Text(t *testing.T) {
	for style, name := range mergeStyleNames {
		raw, err := json.Marshal(style)
		require.NoError(t, err)
		assert.Equal(t, `"`+name+`"`, string(raw))

		var back MergeStyle
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, style, back)
	}

	_, err := ParseMergeStyle("svn")
	assert.Error(t, err)
	assert.Equal(t, "MergeStyle(42)", MergeStyle(42).String())
}
