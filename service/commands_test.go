package service

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func mockStdin(input string, f func()) {
	oldStdin := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r

	go func() {
		w.Write([]byte(input))
		w.Close()
	}()

	f()

	os.Stdin = oldStdin
}

// chdirTemp moves into a temp dir so commands writing relative paths
// (backups land in data/backups) stay out of the working tree.
func chdirTemp(t *testing.T) string {
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { os.Chdir(oldWd) })
	return tmpDir
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectedExit   int
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedOutput: "Usage: inkwell",
			expectedExit:   1,
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedOutput: "Usage: inkwell",
			expectedExit:   0,
		},
		{
			name:           "unknown command",
			args:           []string{"unknown"},
			expectedOutput: "Unknown command: unknown",
			expectedExit:   1,
		},
		{
			name:           "restore without file",
			args:           []string{"restore"},
			expectedOutput: "Error: backup file path required for restore",
			expectedExit:   1,
		},
		{
			name:           "adduser without credentials",
			args:           []string{"adduser", "alice"},
			expectedOutput: "Error: adduser requires a username and password",
			expectedExit:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitCode int
			oldOsExit := osExit
			defer func() { osExit = oldOsExit }()
			osExit = func(code int) {
				exitCode = code
				panic("exit")
			}

			output := captureOutput(func() {
				defer func() {
					if r := recover(); r != nil {
						if r != "exit" {
							panic(r)
						}
					}
				}()
				HandleCommand(tt.args)
			})

			assert.Contains(t, output, tt.expectedOutput)
			if tt.expectedExit > 0 {
				assert.Equal(t, tt.expectedExit, exitCode)
			}
		})
	}
}

func TestInitDb(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	t.Run("initialize new database", func(t *testing.T) {
		output := captureOutput(func() {
			initDb(dbPath)
		})

		assert.Contains(t, output, "Database initialized successfully")
		assert.DirExists(t, dbPath)
	})

	t.Run("initialize existing database", func(t *testing.T) {
		output := captureOutput(func() {
			initDb(dbPath)
		})

		assert.Contains(t, output, "Database already exists")
	})
}

func TestClean(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	t.Run("clean non-existent database", func(t *testing.T) {
		output := captureOutput(func() {
			clean(dbPath)
		})

		assert.Contains(t, output, "Database is already clean")
	})

	t.Run("clean existing database - confirmed", func(t *testing.T) {
		initDb(dbPath)
		assert.DirExists(t, dbPath)

		var output string
		mockStdin("y\n", func() {
			output = captureOutput(func() {
				clean(dbPath)
			})
		})

		assert.Contains(t, output, "Database cleaned successfully")
		assert.NoDirExists(t, dbPath)
	})

	t.Run("clean existing database - cancelled", func(t *testing.T) {
		initDb(dbPath)
		assert.DirExists(t, dbPath)

		var output string
		mockStdin("n\n", func() {
			output = captureOutput(func() {
				clean(dbPath)
			})
		})

		assert.Contains(t, output, "Operation cancelled")
		assert.DirExists(t, dbPath)
	})
}

func TestBackupAndRestore(t *testing.T) {
	tmpDir := chdirTemp(t)
	dbPath := filepath.Join(tmpDir, "test.db")

	t.Run("backup non-existent database", func(t *testing.T) {
		output := captureOutput(func() {
			backup(dbPath)
		})

		assert.Contains(t, output, "No database exists to backup")
	})

	var backupFile string
	t.Run("backup existing database", func(t *testing.T) {
		initDb(dbPath)

		output := captureOutput(func() {
			backup(dbPath)
		})

		assert.Contains(t, output, "Database backed up successfully")
		entries, err := os.ReadDir("data/backups")
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		backupFile = filepath.Join("data/backups", entries[0].Name())
	})

	t.Run("restore non-existent backup", func(t *testing.T) {
		output := captureOutput(func() {
			restore(dbPath, "nonexistent.db")
		})

		assert.Contains(t, output, "Backup file does not exist")
	})

	t.Run("restore empty backup", func(t *testing.T) {
		emptyFile := filepath.Join(tmpDir, "empty.db")
		require.NoError(t, os.WriteFile(emptyFile, nil, 0644))

		var output string
		mockStdin("y\n", func() {
			output = captureOutput(func() {
				restore(dbPath, emptyFile)
			})
		})

		assert.Contains(t, output, "Backup file is empty")
	})

	t.Run("restore to a fresh path", func(t *testing.T) {
		freshPath := filepath.Join(tmpDir, "restored.db")
		output := captureOutput(func() {
			restore(freshPath, backupFile)
		})

		assert.Contains(t, output, "Database restored successfully")
		assert.DirExists(t, freshPath)
	})

	t.Run("restore over existing database - cancelled", func(t *testing.T) {
		var output string
		mockStdin("n\n", func() {
			output = captureOutput(func() {
				restore(dbPath, backupFile)
			})
		})

		assert.Contains(t, output, "Operation cancelled")
	})
}

func TestAddUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	t.Run("create staff account", func(t *testing.T) {
		output := captureOutput(func() {
			addUser(dbPath, "mod", "password1", true)
		})

		assert.Contains(t, output, `Created staff account "mod"`)
	})

	t.Run("duplicate username", func(t *testing.T) {
		output := captureOutput(func() {
			addUser(dbPath, "mod", "password2", false)
		})

		assert.Contains(t, output, "Failed to create user")
	})

	t.Run("weak password", func(t *testing.T) {
		output := captureOutput(func() {
			addUser(dbPath, "newbie", "short", false)
		})

		assert.Contains(t, output, "Failed to create user")
	})
}
