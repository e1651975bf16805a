package security

// DefaultDevIgnoreNames returns the catalogue of directory names associated
// with build output and dependency caches across common ecosystems. Any
// candidate with one of these as an exact path component is skipped when
// the dev-ignore preset is active.
func DefaultDevIgnoreNames() map[string]struct{} {
	names := []string{
		// JS/TS
		"node_modules", "bower_components", "dist", "build", "coverage",
		".next", ".nuxt", ".svelte-kit", ".vite", ".angular", ".storybook", "storybook-static",
		".turbo", ".nx", ".expo", ".vercel", ".output",
		// Python
		"venv", ".venv", "env", ".env", "__pycache__", ".mypy_cache", ".pytest_cache", ".ruff_cache", ".ipynb_checkpoints",
		// Java/Kotlin/Android
		"target", "out", ".gradle", ".mvn",
		// Swift/iOS
		"DerivedData", ".build", ".swiftpm", "Pods", "Carthage",
		// Go
		"vendor", "bin", "pkg",
		// Ruby
		".bundle", "tmp", "log", ".yardoc",
		// PHP
		"var", "bootstrap", "storage",
		// .NET
		"obj", "packages", "TestResults",
		// C/C++/CMake
		"CMakeFiles", ".deps",
		// Haskell
		"dist-newstyle", ".stack-work",
		// Elixir/Erlang
		"_build", "deps", "cover",
		// Scala/Metals
		"project", ".bloop", ".metals",
		// Monorepo tools
		"bazel-bin", "bazel-out", "buck-out",
		// VCS
		".git", ".hg", ".svn",
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
