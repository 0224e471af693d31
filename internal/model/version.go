package model

// Version is the released version of gubed.
const Version = "0.3.0"

// Release coordinates used by the update check.
const (
	RepoOwner = "gubed"
	RepoName  = "gubed"
)
