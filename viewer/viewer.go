// SPDX-License-Identifier: GPL-3.0-or-later
package viewer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/emersion/go-mbox"
)

const mboxSender = "MAILER-DAEMON"

// Viewer hands a raw mail to an external mail reader. The mail is written to tmpFile as a
// single-message mbox, the command gets the file name as its last argument.
type Viewer struct {
	command []string
	tmpFile string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewViewer(command string, tmpFile string) (*Viewer, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("viewer command must not be empty")
	}

	return &Viewer{
		command: args,
		tmpFile: tmpFile,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}, nil
}

func (v *Viewer) Show(rawMail []byte) error {
	err := v.writeMbox(rawMail)
	if err != nil {
		return err
	}
	defer os.Remove(v.tmpFile)

	cmd := exec.Command(v.command[0], append(v.command[1:], v.tmpFile)...)
	cmd.Stdin = v.stdin
	cmd.Stdout = v.stdout
	cmd.Stderr = v.stderr

	err = cmd.Run()
	if err != nil {
		return fmt.Errorf("could not run viewer %s: %w", v.command[0], err)
	}

	return nil
}

func (v *Viewer) writeMbox(rawMail []byte) error {
	f, err := os.OpenFile(v.tmpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", v.tmpFile, err)
	}

	mw := mbox.NewWriter(f)
	w, err := mw.CreateMessage(mboxSender, time.Now())
	if err != nil {
		f.Close()
		return fmt.Errorf("could not start mbox message: %w", err)
	}

	_, err = w.Write(rawMail)
	if err != nil {
		f.Close()
		return fmt.Errorf("could not write mbox message: %w", err)
	}

	err = mw.Close()
	if err != nil {
		f.Close()
		return fmt.Errorf("could not finish mbox: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("could not close %s: %w", v.tmpFile, err)
	}

	return nil
}
