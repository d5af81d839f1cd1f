package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/passmgr/internal/secrets"
)

// readPassword is a test seam for term.ReadPassword. In tests you can
// replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// ReadPassword prints a prompt to w and reads a password from the user's
// terminal without echo. A newline is printed after the read to keep the
// UI tidy. The result is returned as a scoped buffer; ownership passes to
// the caller, who must Wipe it.
func ReadPassword(w io.Writer, prompt string) (*secrets.Buffer, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return secrets.New(pw), nil
}

// ReadNewPassword prompts for a brand-new master password and a
// confirmation. Both entries are read without echo; the confirmation
// buffer is wiped before returning. A mismatch is an error and leaves no
// secret material behind.
func ReadNewPassword(w io.Writer) (*secrets.Buffer, error) {
	pw, err := ReadPassword(w, "New Master Password: ")
	if err != nil {
		return nil, err
	}

	confirm, err := ReadPassword(w, "Confirm Master Password: ")
	if err != nil {
		pw.Wipe()
		return nil, err
	}
	defer confirm.Wipe()

	if !bytes.Equal(pw.Bytes(), confirm.Bytes()) {
		pw.Wipe()
		return nil, errors.New("passwords do not match")
	}
	return pw, nil
}
