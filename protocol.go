package fbhost

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Data is the tagged-sum payload carried by a Request or Response. The
// variants are FunctionBlockData, FunctionBlockListData, ConnectionData and
// WatchesData; Go's encoding/xml has no native sum-type support, so decoding
// dispatches on the child element's tag name (the same idiom used for
// innerxml-carried RPC operations in NETCONF-style protocols).
type Data interface {
	isData()
	xmlName() string
}

// FunctionBlockData names a single function block instance, or a query
// pattern when Name/Type are "*".
type FunctionBlockData struct {
	Name string
	Type string
}

func (FunctionBlockData) isData()        {}
func (FunctionBlockData) xmlName() string { return "FB" }

// FunctionBlockListData enumerates function block instances, as returned by
// a successful wildcard QUERY.
type FunctionBlockListData struct {
	Items []FunctionBlockData
}

func (FunctionBlockListData) isData()        {}
func (FunctionBlockListData) xmlName() string { return "FBList" }

// ConnectionData names a source/destination port pair of the form
// "block.port", as used by CREATE/DELETE Connection requests.
type ConnectionData struct {
	Source      string
	Destination string
}

func (ConnectionData) isData()        {}
func (ConnectionData) xmlName() string { return "Connection" }

// WatchesData is the reserved, currently no-op payload for READ Watches.
type WatchesData struct{}

func (WatchesData) isData()        {}
func (WatchesData) xmlName() string { return "Watches" }

// Request is the decoded form of a <Request> element. Destination is not
// part of the XML body — it's carried by the Frame's dest string — but is
// folded in here once the connection task has parsed both, so the rest of
// the system (the request channel, the container tree) only has to deal
// with one self-contained value.
type Request struct {
	ID          string
	Destination Destination
	Action      Action
	Data        Data // nil if absent
}

// Response is the wire-level reply. Reason is "" on success; Data is nil
// when Reason is set, and may also be nil on success if the operation has
// no result payload.
type Response struct {
	ID     string
	Reason Error
	Data   Data // nil if absent
}

// DecodeError marks a failure that must close the connection without
// emitting a Response, because no trustworthy ID could be recovered.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "fbhost: decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrorf(format string, args ...any) error {
	return &DecodeError{Err: fmt.Errorf(format, args...)}
}

// DecodeRequestXML parses a <Request ID="…" Action="…">…</Request> body.
// The destination is not part of this payload; callers set req.Destination
// separately from the Frame's dest string.
func DecodeRequestXML(body string) (Request, error) {
	dec := xml.NewDecoder(bytes.NewReader([]byte(body)))

	start, err := nextStart(dec)
	if err != nil {
		return Request{}, decodeErrorf("request: %w", err)
	}
	if start.Name.Local != "Request" {
		return Request{}, decodeErrorf("request: unexpected root element %q", start.Name.Local)
	}

	var id, actionAttr string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "ID":
			id = a.Value
		case "Action":
			actionAttr = a.Value
		}
	}
	if id == "" {
		return Request{}, decodeErrorf("request: missing ID attribute")
	}
	action, ok := ParseAction(actionAttr)
	if !ok {
		return Request{}, decodeErrorf("request: unknown action %q", actionAttr)
	}

	data, err := decodeOptionalData(dec, start.Name)
	if err != nil {
		return Request{}, decodeErrorf("request: %w", err)
	}

	return Request{ID: id, Action: action, Data: data}, nil
}

// EncodeRequestXML renders a Request back into wire XML (used by clients
// and by round-trip tests).
func EncodeRequestXML(req Request) (string, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	start := xml.StartElement{
		Name: xml.Name{Local: "Request"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "ID"}, Value: req.ID},
			{Name: xml.Name{Local: "Action"}, Value: actionXMLName[req.Action]},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return "", err
	}
	if req.Data != nil {
		if err := encodeData(enc, req.Data); err != nil {
			return "", err
		}
	}
	if err := enc.EncodeToken(xml.EndElement{Name: start.Name}); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DecodeResponseXML parses a <Response ID="…" Reason="…">…</Response> body.
func DecodeResponseXML(body string) (Response, error) {
	dec := xml.NewDecoder(bytes.NewReader([]byte(body)))

	start, err := nextStart(dec)
	if err != nil {
		return Response{}, decodeErrorf("response: %w", err)
	}
	if start.Name.Local != "Response" {
		return Response{}, decodeErrorf("response: unexpected root element %q", start.Name.Local)
	}

	var id, reasonAttr string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "ID":
			id = a.Value
		case "Reason":
			reasonAttr = a.Value
		}
	}

	var reason Error
	if reasonAttr != "" {
		e, ok := ParseError(reasonAttr)
		if !ok {
			return Response{}, decodeErrorf("response: unknown reason %q", reasonAttr)
		}
		reason = e
	}

	data, err := decodeOptionalData(dec, start.Name)
	if err != nil {
		return Response{}, decodeErrorf("response: %w", err)
	}

	return Response{ID: id, Reason: reason, Data: data}, nil
}

// EncodeResponseXML renders a Response back into wire XML. The Reason
// attribute is omitted on success; the data element is omitted on failure.
func EncodeResponseXML(resp Response) (string, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	start := xml.StartElement{
		Name: xml.Name{Local: "Response"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "ID"}, Value: resp.ID}},
	}
	if resp.Reason != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "Reason"}, Value: errorXMLName[resp.Reason]})
	}
	if err := enc.EncodeToken(start); err != nil {
		return "", err
	}
	if resp.Reason == "" && resp.Data != nil {
		if err := encodeData(enc, resp.Data); err != nil {
			return "", err
		}
	}
	if err := enc.EncodeToken(xml.EndElement{Name: start.Name}); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// nextStart advances past any leading CharData/ProcInst tokens to the
// first StartElement, mirroring the token-skipping loop NETCONF-style
// decoders use when the root element isn't guaranteed to be the very first
// token emitted by the XML decoder.
func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return xml.StartElement{}, fmt.Errorf("no root element")
			}
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// decodeOptionalData decodes the first child element of parent as a Data
// variant, or returns nil if parent closes with no child element. Tokens
// after that first child are not read, so further children go unchecked.
func decodeOptionalData(dec *xml.Decoder, parent xml.Name) (Data, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return decodeDataElement(dec, t)
		case xml.EndElement:
			if t.Name.Local == parent.Local {
				return nil, nil
			}
		}
	}
}

func decodeDataElement(dec *xml.Decoder, start xml.StartElement) (Data, error) {
	switch start.Name.Local {
	case "FB":
		fb, err := decodeFB(start)
		if err != nil {
			return nil, err
		}
		if err := skipElement(dec, start.Name); err != nil {
			return nil, err
		}
		return fb, nil
	case "FBList":
		return decodeFBList(dec, start)
	case "Connection":
		return decodeConnection(start), skipElement(dec, start.Name)
	case "Watches":
		return WatchesData{}, skipElement(dec, start.Name)
	default:
		return nil, fmt.Errorf("unknown element %q", start.Name.Local)
	}
}

func decodeFB(start xml.StartElement) (FunctionBlockData, error) {
	var fb FunctionBlockData
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "Name":
			fb.Name = a.Value
		case "Type":
			fb.Type = a.Value
		}
	}
	return fb, nil
}

func decodeConnection(start xml.StartElement) ConnectionData {
	var c ConnectionData
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "Source":
			c.Source = a.Value
		case "Destination":
			c.Destination = a.Value
		}
	}
	return c
}

func decodeFBList(dec *xml.Decoder, start xml.StartElement) (Data, error) {
	var list FunctionBlockListData
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "FB" {
				return nil, fmt.Errorf("unexpected element %q inside FBList", t.Name.Local)
			}
			fb, err := decodeFB(t)
			if err != nil {
				return nil, err
			}
			if err := skipElement(dec, t.Name); err != nil {
				return nil, err
			}
			list.Items = append(list.Items, fb)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return list, nil
			}
		}
	}
}

// skipElement consumes tokens up to and including the matching EndElement
// for an already-opened StartElement, discarding any content (the protocol
// never nests anything beneath FB/Connection/Watches elements, but a
// defensive skip keeps the decoder's cursor correct even if a future
// element unexpectedly does).
func skipElement(dec *xml.Decoder, name xml.Name) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func encodeData(enc *xml.Encoder, d Data) error {
	switch v := d.(type) {
	case FunctionBlockData:
		return encodeFB(enc, v)
	case FunctionBlockListData:
		start := xml.StartElement{Name: xml.Name{Local: "FBList"}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, fb := range v.Items {
			if err := encodeFB(enc, fb); err != nil {
				return err
			}
		}
		return enc.EncodeToken(xml.EndElement{Name: start.Name})
	case ConnectionData:
		start := xml.StartElement{
			Name: xml.Name{Local: "Connection"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "Source"}, Value: v.Source},
				{Name: xml.Name{Local: "Destination"}, Value: v.Destination},
			},
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		return enc.EncodeToken(xml.EndElement{Name: start.Name})
	case WatchesData:
		start := xml.StartElement{Name: xml.Name{Local: "Watches"}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		return enc.EncodeToken(xml.EndElement{Name: start.Name})
	default:
		return fmt.Errorf("unknown data variant %T", d)
	}
}

func encodeFB(enc *xml.Encoder, fb FunctionBlockData) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "FB"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Name"}, Value: fb.Name},
			{Name: xml.Name{Local: "Type"}, Value: fb.Type},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
