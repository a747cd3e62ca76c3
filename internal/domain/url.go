package domain

import (
	"regexp"
	"strings"
)

// tiktokDomains are the domain tokens accepted as TikTok URLs. The primary
// domain plus the two short-link subdomains used by the share sheet.
var tiktokDomains = []string{
	"tiktok.com",
	"vm.tiktok.com",
	"vt.tiktok.com",
}

// urlPattern matches TikTok URLs embedded in free text.
var urlPattern = regexp.MustCompile(`https?://(?:www\.)?(?:vm\.)?(?:vt\.)?tiktok\.com/[^\s]+`)

// IsTikTokURL reports whether the string contains a known TikTok domain.
// This is a deliberate substring check rather than strict URL parsing:
// short links redirect through several hosts and strict parsing rejects
// URLs that yt-dlp resolves fine.
func IsTikTokURL(url string) bool {
	lowered := strings.ToLower(url)
	for _, domain := range tiktokDomains {
		if strings.Contains(lowered, domain) {
			return true
		}
	}
	return false
}

// ExtractURLs scans free text for TikTok URLs and returns them in
// first-seen order. Duplicates are preserved at this stage.
func ExtractURLs(text string) []string {
	candidates := urlPattern.FindAllString(text, -1)

	var urls []string
	for _, candidate := range candidates {
		if IsTikTokURL(candidate) {
			urls = append(urls, candidate)
		}
	}
	return urls
}

// CollectURLs builds the final input set for a batch from pasted text:
// URLs extracted from the text are merged with line-split manual entries,
// de-duplicated, and filtered through the validator. De-duplication goes
// through a map, so the returned order is not stable.
func CollectURLs(text string) []string {
	seen := make(map[string]struct{})

	for _, url := range ExtractURLs(text) {
		seen[url] = struct{}{}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			seen[line] = struct{}{}
		}
	}

	var urls []string
	for url := range seen {
		if IsTikTokURL(url) {
			urls = append(urls, url)
		}
	}
	return urls
}
