// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

type Language string

const (
	LanguageUnknown Language = "unknown"
	LanguageJava    Language = "java"
	LanguageGo      Language = "go"
	LanguageC       Language = "c"
	LanguageCpp     Language = "cpp"
	LanguageCSharp  Language = "csharp"
)

type MetricID string

const (
	MetricCyclomatic       MetricID = "complexity.cyclomatic"
	MetricDecisions        MetricID = "complexity.decisions"
	MetricLOC              MetricID = "size.loc"
	MetricLOCPerPackage    MetricID = "size.loc_per_package"
	MetricMethodLines      MetricID = "size.method_lines"
	MetricPackageDeps      MetricID = "coupling.package_dependencies"
	MetricThreadPoints     MetricID = "concurrency.thread_points"
	MetricThreadStarts     MetricID = "concurrency.thread_starts"
	MetricSyncBlocks       MetricID = "concurrency.sync_blocks"
	MetricClassScore       MetricID = "refactor.class_score"
	MetricExternalLibs     MetricID = "dependencies.external"
	MetricStaticBugs       MetricID = "bugs.spotbugs"
	MetricGitLinesAdded    MetricID = "git.churn.lines_added"
	MetricGitLinesDeleted  MetricID = "git.churn.lines_deleted"
	MetricGitCommits       MetricID = "git.commits"
	MetricGitBugfixCommits MetricID = "git.commits.bugfix"
	MetricGitAuthors       MetricID = "git.authors"
	MetricHotspotScore     MetricID = "hotspot.score_complexity_churn"
)

type MetricSummary struct {
	ID          MetricID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Group       string   `json:"group"`
}

func AllMetricSummaries() []MetricSummary {
	return []MetricSummary{
		{
			ID:          MetricCyclomatic,
			Name:        "Cyclomatic Complexity",
			Description: "1 + decision points (if, for, while, catch, case, ?, &&, ||) per method body.",
			Group:       "complexity",
		},
		{
			ID:          MetricDecisions,
			Name:        "Decision Breakdown",
			Description: "Per-construct count of the decision points behind a complexity score.",
			Group:       "complexity",
		},
		{
			ID:          MetricLOC,
			Name:        "Lines of Code",
			Description: "Non-blank lines left after removing comments.",
			Group:       "size",
		},
		{
			ID:          MetricLOCPerPackage,
			Name:        "LOC per Package",
			Description: "Lines of code summed by declared package.",
			Group:       "size",
		},
		{
			ID:          MetricMethodLines,
			Name:        "Method Lines",
			Description: "Physical lines spanned by a method body; more than 50 flags a long method.",
			Group:       "size",
		},
		{
			ID:          MetricPackageDeps,
			Name:        "Package Dependencies",
			Description: "Internal package-to-package edges derived from import statements.",
			Group:       "coupling",
		},
		{
			ID:          MetricThreadPoints,
			Name:        "Thread Creation Points",
			Description: "Lines that create threads, executors or async tasks.",
			Group:       "concurrency",
		},
		{
			ID:          MetricThreadStarts,
			Name:        "Thread Starts",
			Description: "Thread start or task submission calls per class.",
			Group:       "concurrency",
		},
		{
			ID:          MetricSyncBlocks,
			Name:        "Synchronized Blocks",
			Description: "synchronized blocks and methods per class.",
			Group:       "concurrency",
		},
		{
			ID:          MetricClassScore,
			Name:        "Refactoring Score",
			Description: "loc/10 + methods*3 + fields + threads*10 + executors*5 + sync*5; above 20 is high.",
			Group:       "refactor",
		},
		{
			ID:          MetricExternalLibs,
			Name:        "External Libraries",
			Description: "Dependencies declared in the Gradle build file.",
			Group:       "dependencies",
		},
		{
			ID:          MetricStaticBugs,
			Name:        "SpotBugs Findings",
			Description: "Bug instances reported by SpotBugs, by priority and category.",
			Group:       "bugs",
		},
		{
			ID:          MetricGitLinesAdded,
			Name:        "Git Lines Added",
			Description: "Lines added in Git history for a file.",
			Group:       "git",
		},
		{
			ID:          MetricGitLinesDeleted,
			Name:        "Git Lines Deleted",
			Description: "Lines deleted in Git history for a file.",
			Group:       "git",
		},
		{
			ID:          MetricGitCommits,
			Name:        "Git Commits",
			Description: "Number of commits touching a file.",
			Group:       "git",
		},
		{
			ID:          MetricGitBugfixCommits,
			Name:        "Bugfix Commits",
			Description: "Number of commits that look like bug fixes.",
			Group:       "git",
		},
		{
			ID:          MetricGitAuthors,
			Name:        "Authors",
			Description: "Number of distinct authors touching a file (bus factor proxy).",
			Group:       "git",
		},
		{
			ID:          MetricHotspotScore,
			Name:        "Hotspot Score",
			Description: "Method complexity weighted by the churn of its file.",
			Group:       "hotspots",
		},
	}
}
