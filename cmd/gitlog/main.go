// Gitlog reads a repository's commit history and turns it into structured
// records for changelog generation.
//
// Every commit becomes a record with its hash, author, date, version tag,
// subject and message, --shortstat totals, referenced issues and the pull or
// merge request it came from, with links built for the hosting service.
//
// Usage:
//
//	# Print every commit as JSON
//	gitlog commits
//
//	# Stop at a known commit and print YAML
//	gitlog commits --starting-commit 2401ee4 --format yaml
//
//	# Group commits into releases by version tag
//	gitlog releases
//
//	# Save the records to SQLite
//	gitlog export --db changelog.db
//
//	# Browse the history, reloading when refs change
//	gitlog browse --watch
package main

func main() {
	Execute()
}
