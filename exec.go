package cropicon

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/cropicon/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Ops holds the source and destination of a command line crop operation.
// Src can be a local file, an http(s) URL or the pipe name, Dst a local file or the pipe name.
type Ops struct {
	Src, Dst, PipeName string
	// Stderr receives the status messages. It defaults to os.Stderr.
	Stderr io.Writer
}

// Execute runs the crop operation described by op and prints its status.
func (p *Processor) Execute(op *Ops) error {
	if op.Stderr == nil {
		op.Stderr = os.Stderr
	}

	// The destination is validated first, before reading the source.
	format := imaging.PNG
	if op.Dst != op.PipeName {
		var err error
		if format, err = FormatFromPath(op.Dst); err != nil {
			op.printOpStatus(op.Dst, nil, err)
			return err
		}
	}

	now := time.Now()
	res, err := op.process(p, format)
	op.printOpStatus(op.Dst, res, err)
	if err != nil {
		return err
	}

	fmt.Fprintf(op.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
	)
	return nil
}

// process reads the source, crops it and writes the result to the destination.
func (op *Ops) process(p *Processor, format imaging.Format) (res *Result, err error) {
	if p.Spinner != nil {
		p.Spinner.Start()

		// Capture CTRL-C signal and restores back the cursor visibility.
		signalChan := make(chan os.Signal, 1)
		done := make(chan struct{})
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case <-signalChan:
				p.Spinner.RestoreCursor()
				os.Exit(1)
			case <-done:
			}
		}()

		defer func() {
			signal.Stop(signalChan)
			close(done)

			if err != nil {
				p.Spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
					utils.DecorateText("✂ CROPICON", utils.StatusMessage),
					utils.DecorateText("cropping the icon failed...", utils.DefaultMessage),
					utils.DecorateText("✘", utils.ErrorMessage),
				)
			} else {
				p.Spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
					utils.DecorateText("✂ CROPICON", utils.StatusMessage),
					utils.DecorateText("⇢", utils.DefaultMessage),
					utils.DecorateText("the icon has been processed ✔", utils.SuccessMessage),
				)
			}
			p.Spinner.Stop()
		}()
	}

	// Both regular files and the in-place crop are served by CropFile.
	if !utils.IsValidUrl(op.Src) && op.Src != op.PipeName && op.Dst != op.PipeName {
		return p.cropFile(op.Src, op.Dst)
	}

	src, err := op.source()
	if err != nil {
		return nil, err
	}

	if op.Dst == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, &WriteError{Path: op.Dst, Err: errors.New("`-` should be used with a pipe for stdout")}
		}
		return p.process(src, op.Src, os.Stdout, op.Dst, format)
	}

	return p.process(src, op.Src, &fileWriter{path: op.Dst}, op.Dst, format)
}

// source returns a reader over the source image: a downloaded URL, a local file or the standard input.
func (op *Ops) source() (io.Reader, error) {
	if utils.IsValidUrl(op.Src) {
		data, err := utils.DownloadImage(op.Src)
		if err != nil {
			return nil, &DecodeError{Path: op.Src, Err: err}
		}
		return bytes.NewReader(data), nil
	}

	if op.Src != op.PipeName {
		data, err := os.ReadFile(op.Src)
		if err != nil {
			return nil, &DecodeError{Path: op.Src, Err: errors.Wrap(err, "read")}
		}
		return bytes.NewReader(data), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, &DecodeError{Path: op.Src, Err: errors.New("`-` should be used with a pipe for stdin")}
	}
	return os.Stdin, nil
}

// printOpStatus displays the relevant information about the crop operation.
func (op *Ops) printOpStatus(fname string, res *Result, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(op.Stderr, "%s%s",
			utils.DecorateText("\nError cropping the image: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
	case res == nil:
		fmt.Fprintf(op.Stderr, "\n%s\n",
			utils.DecorateText("Nothing to crop, the destination has been left untouched.", utils.StatusMessage),
		)
	case fname != op.PipeName:
		fmt.Fprintf(op.Stderr, "\nThe image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// fileWriter replaces the destination file with the written content.
// It is invoked only once the image has been fully encoded.
type fileWriter struct {
	path string
}

func (w *fileWriter) Write(b []byte) (int, error) {
	if err := os.WriteFile(w.path, b, 0644); err != nil {
		return 0, err
	}
	return len(b), nil
}
