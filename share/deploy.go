// ABOUTME: Generates the "Deploy to Cloudflare Workers" button snippet for a GitHub repository.
package share

import (
	"errors"
	"html"
	"net/url"
	"regexp"
)

// DeployButtonImage is the badge image served by Cloudflare.
const DeployButtonImage = "https://deploy.workers.cloudflare.com/button"

var githubNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ErrInvalidRepo is returned when the GitHub user or repository name is unusable.
var ErrInvalidRepo = errors.New("invalid GitHub user or repository name")

// DeployURL returns the Cloudflare deploy link for github.com/<user>/<repo>.
func DeployURL(user, repo string) (string, error) {
	if !githubNameRe.MatchString(user) || !githubNameRe.MatchString(repo) {
		return "", ErrInvalidRepo
	}
	q := url.Values{"url": {"https://github.com/" + user + "/" + repo}}
	return "https://deploy.workers.cloudflare.com/?" + q.Encode(), nil
}

// DeployButton returns the HTML snippet and the deploy link it points at.
func DeployButton(user, repo string) (snippet, deployURL string, err error) {
	deployURL, err = DeployURL(user, repo)
	if err != nil {
		return "", "", err
	}
	snippet = `<center>
  <a href="` + html.EscapeString(deployURL) + `">
    <img src="` + DeployButtonImage + `" alt="Deploy to Cloudflare Workers" />
  </a>
</center>`
	return snippet, deployURL, nil
}
