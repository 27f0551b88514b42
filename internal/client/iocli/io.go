// Package iocli отделяет команды CLI от терминала: команды пишут отчеты и
// читают токен через IO, а тесты подставляют IOMock.
package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal seen by a CLI command.
//
// Println, Printf and Write print command output (queue state, replay
// reports, warnings about changes left in the queue). ReadInput reads one
// line; a missing trailing newline at EOF is not an error, so input may be
// piped. ReadPassword reads a secret such as an access token without echo
// when the input is a terminal and falls back to ReadInput otherwise.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
