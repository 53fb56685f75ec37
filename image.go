package cropicon

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/cropicon/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

// CropFile crops the image found at the in path and saves the result into out.
// The destination format is deduced from the out file extension.
// The source is read to completion before the destination is touched, so in and out can be the same file.
// If the image is a single solid color nothing is written and a nil error is returned.
func (p *Processor) CropFile(in, out string) error {
	_, err := p.cropFile(in, out)
	return err
}

func (p *Processor) cropFile(in, out string) (*Result, error) {
	format, err := FormatFromPath(out)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return nil, &DecodeError{Path: in, Err: errors.Wrap(err, "read")}
	}

	return p.cropTo(data, in, format, func(buf []byte) error {
		if err := os.WriteFile(out, buf, 0644); err != nil {
			return &WriteError{Path: out, Err: err}
		}
		return nil
	}, out)
}

// Process crops the image read from r and encodes it in the provided format into w.
// Nothing is written to w when the image is a single solid color.
func (p *Processor) Process(r io.Reader, w io.Writer, format imaging.Format) error {
	_, err := p.process(r, "-", w, "-", format)
	return err
}

func (p *Processor) process(r io.Reader, in string, w io.Writer, out string, format imaging.Format) (*Result, error) {
	if err := checkAlpha(format, out); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Path: in, Err: errors.Wrap(err, "read")}
	}

	return p.cropTo(data, in, format, func(buf []byte) error {
		if _, err := w.Write(buf); err != nil {
			return &WriteError{Path: out, Err: err}
		}
		return nil
	}, out)
}

// cropTo decodes the source data, crops it and hands over the encoded result to the write function.
// The result is nil when there was nothing to crop.
func (p *Processor) cropTo(
	data []byte,
	in string,
	format imaging.Format,
	write func([]byte) error,
	out string,
) (*Result, error) {
	src, err := decodeImg(data, in)
	if err != nil {
		return nil, err
	}

	img, res, err := p.Crop(src)
	if errors.Is(err, ErrNoBounds) {
		p.logger().Info("Could not find bounds to crop. Image might be solid color.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, &EncodeError{Path: out, Err: err}
	}
	if err := write(buf.Bytes()); err != nil {
		return nil, err
	}

	p.logger().WithFields(logrus.Fields{
		"src": in,
		"dst": out,
	}).Infof("Image cropped. Original size: (%d, %d), New final bounds size: %dx%d",
		res.Original.X, res.Original.Y, res.Side, res.Side)

	return res, nil
}

// decodeImg decodes the raw image data to type image.Image.
func decodeImg(data []byte, name string) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		ctype := utils.DetectContentType(data)
		return nil, &DecodeError{Path: name, Err: errors.Wrapf(err, "content type %s", ctype)}
	}
	return img, nil
}

// FormatFromPath returns the output format deduced from the file extension.
// Only formats able to store the alpha channel are accepted.
func FormatFromPath(path string) (imaging.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, &EncodeError{Path: path, Err: errors.Wrapf(err, "extension %q", ext)}
	}
	if err := checkAlpha(format, path); err != nil {
		return 0, err
	}
	return format, nil
}

func checkAlpha(format imaging.Format, path string) error {
	switch format {
	case imaging.PNG, imaging.BMP, imaging.TIFF:
		return nil
	}
	return &EncodeError{
		Path: path,
		Err:  errors.Errorf("%s format does not support transparency", format),
	}
}
