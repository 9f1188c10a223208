package source

import (
	"testing"
)

func TestNewSchemeSelection(t *testing.T) {
	cases := []struct {
		location string
		wantType string
	}{
		{"config/release-it.json", "file"},
		{"file:///etc/release-it.json", "file"},
		{"https://example.com/release-it.json", "http"},
		{"http://example.com/release-it.json", "http"},
		{"https://github.com/release-ops/configs.git#release-it.json", "git"},
		{"s3://configs/release-it.json?region=us-east-1", "s3"},
		{"gs://configs/release-it.json", "gs"},
	}
	for _, tc := range cases {
		repo, err := New(tc.location, "")
		if err != nil {
			t.Errorf("New(%q) error: %v", tc.location, err)
			continue
		}
		if repo.GetType() != tc.wantType {
			t.Errorf("New(%q).GetType() = %q, want %q", tc.location, repo.GetType(), tc.wantType)
		}
	}
}

func TestNewUnsupportedScheme(t *testing.T) {
	if _, err := New("ftp://example.com/release-it.json", ""); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestNewS3Fields(t *testing.T) {
	repo, err := New("s3://configs/team/release-it.json?region=eu-west-1", "")
	if err != nil {
		t.Fatal(err)
	}
	s3repo, ok := repo.(*S3Repository)
	if !ok {
		t.Fatalf("expected *S3Repository, got %T", repo)
	}
	if s3repo.Bucket != "configs" {
		t.Errorf("bucket = %q, want configs", s3repo.Bucket)
	}
	if s3repo.Path != "team/release-it.json" {
		t.Errorf("path = %q", s3repo.Path)
	}
	if s3repo.Region != "eu-west-1" {
		t.Errorf("region = %q", s3repo.Region)
	}
}

func TestNewGitFields(t *testing.T) {
	repo, err := New("https://github.com/release-ops/configs.git?ref=main#team/release-it.json", "secret")
	if err != nil {
		t.Fatal(err)
	}
	gitRepo, ok := repo.(*GitRepository)
	if !ok {
		t.Fatalf("expected *GitRepository, got %T", repo)
	}
	if gitRepo.URL.String() != "https://github.com/release-ops/configs.git" {
		t.Errorf("clone URL = %q", gitRepo.URL)
	}
	if gitRepo.Path != "team/release-it.json" {
		t.Errorf("path = %q", gitRepo.Path)
	}
	if gitRepo.Branch != "main" {
		t.Errorf("branch = %q", gitRepo.Branch)
	}
	if gitRepo.Auth == nil || gitRepo.Auth.Password != "secret" {
		t.Error("token should be wired into basic auth")
	}
}

func TestNewGitDefaults(t *testing.T) {
	repo, err := New("https://github.com/release-ops/configs.git", "")
	if err != nil {
		t.Fatal(err)
	}
	gitRepo := repo.(*GitRepository)
	if gitRepo.Path != "release-it.json" {
		t.Errorf("default path = %q, want release-it.json", gitRepo.Path)
	}
	if gitRepo.Auth != nil {
		t.Error("no token should mean no auth")
	}
}
