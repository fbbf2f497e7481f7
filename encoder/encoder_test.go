package encoder

import (
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/metrics"
	"github.com/relex/slog-syslog/record"
	"github.com/relex/slog-syslog/syslogprotocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2021, 3, 4, 5, 6, 7, 891000000, time.UTC)

func testConfig() Config {
	return Config{
		AppName:                 defs.TestAppName,
		MsgID:                   defs.TestMsgID,
		PrivateEnterpriseNumber: strconv.Itoa(defs.TestPEN),
		Facility:                "LOCAL3",
		Hostname:                defs.TestHostname,
	}
}

func newTestEncoder(t *testing.T, config Config) (*Encoder, *metrics.MetricFactory) {
	factory := metrics.NewMetricFactoryWithRegisterer(nil, "testencoder_", nil, nil)
	enc, err := NewEncoder(logger.Root(), config, NewMetrics(factory))
	require.NoError(t, err)
	enc.now = func() time.Time { return testTime }
	return enc, factory
}

func parseEncoded(t *testing.T, enc *Encoder, raw interface{}) syslogprotocol.Line {
	text := enc.Encode(raw)
	require.True(t, strings.HasSuffix(text, "\n"), text)
	require.Equal(t, 1, strings.Count(text, "\n"), text)
	line, err := syslogprotocol.ParseLine(text)
	require.NoError(t, err, text)
	return line
}

func messageOf(t *testing.T, enc *Encoder, raw interface{}) string {
	return parseEncoded(t, enc, raw).Message
}

// sdOf encodes the fields with msg "foo" and returns the structured data, or empty string for NILVALUE
func sdOf(t *testing.T, enc *Encoder, fields *record.Object) string {
	rec := fields.Without(nil)
	rec.Set("msg", "foo")
	sd := parseEncoded(t, enc, rec).StructuredData
	if sd == syslogprotocol.NilValue {
		return ""
	}
	return sd
}

func TestEncoderPlainText(t *testing.T) {
	enc, factory := newTestEncoder(t, testConfig())
	pid := strconv.Itoa(os.Getpid())
	assert.Equal(t, "<157>1 2021-03-04T05:06:07.891Z 127.0.1.1 Test "+pid+" FOOMSG - foo\n", enc.Encode("foo"))

	for _, text := range []string{"", "a b  c", "quote\" and ]", "ünïcødé"} {
		assert.Equal(t, text, messageOf(t, enc, text))
	}

	dump, err := factory.DumpMetrics(false)
	require.NoError(t, err)
	assert.Contains(t, dump, `testencoder_encoded_records_total{path="plain"} 5`)
}

func TestEncoderDefaults(t *testing.T) {
	enc, _ := newTestEncoder(t, Config{})
	line := parseEncoded(t, enc, "bar")
	assert.Equal(t, syslogprotocol.Facility(16), line.Facility)
	assert.Equal(t, syslogprotocol.SeverityNotice, line.Severity)
	assert.Equal(t, strconv.Itoa(os.Getpid()), line.ProcID)
	assert.Equal(t, syslogprotocol.NilValue, line.MsgID)
	assert.NotEqual(t, syslogprotocol.NilValue, line.AppName)
	assert.True(t, enc.useStructuredData)
	assert.False(t, enc.decodeBuffers)
	assert.False(t, enc.decodeJSON)
	assert.Equal(t, 0, enc.validator.PEN())
}

func TestEncoderIdentityConfig(t *testing.T) {
	enc, _ := newTestEncoder(t, Config{Hostname: "host.example", AppName: "myapp", MsgID: "ID47", PID: "1"})
	line := parseEncoded(t, enc, "bar")
	assert.Equal(t, "host.example", line.Hostname)
	assert.Equal(t, "myapp", line.AppName)
	assert.Equal(t, "1", line.ProcID)
	assert.Equal(t, "ID47", line.MsgID)
}

func TestEncoderInvalidConfig(t *testing.T) {
	factory := metrics.NewMetricFactoryWithRegisterer(nil, "testinvalid_", nil, nil)
	_, err := NewEncoder(logger.Root(), Config{DefaultSeverity: "loud"}, NewMetrics(factory))
	assert.ErrorContains(t, err, "defaultSeverity")
	_, err = NewEncoder(logger.Root(), Config{Facility: "local9"}, NewMetrics(factory))
	assert.ErrorContains(t, err, "facility")
	_, err = NewEncoder(logger.Root(), Config{Type: "RFC1"}, NewMetrics(factory))
	assert.ErrorContains(t, err, "type")
	assert.Panics(t, func() { MustNewEncoder(logger.Root(), Config{Facility: "?"}, NewMetrics(factory)) })

	_, err = NewEncoder(logger.Root(), Config{}, nil)
	assert.ErrorContains(t, err, "metrics")
	assert.Panics(t, func() { MustNewEncoder(logger.Root(), Config{}, nil) })
}

func TestEncoderDecodeOptions(t *testing.T) {
	plain, _ := newTestEncoder(t, Config{})
	assert.Equal(t, "[102,111,111]", messageOf(t, plain, []byte("foo")))
	assert.Equal(t, `{"msg":"foo"}`, messageOf(t, plain, `{"msg":"foo"}`))

	buffers, _ := newTestEncoder(t, Config{DecodeBuffers: true})
	assert.Equal(t, "foo", messageOf(t, buffers, []byte("foo")))

	decodeJSON, _ := newTestEncoder(t, Config{DecodeJSON: true})
	assert.Equal(t, "foo", messageOf(t, decodeJSON, `{"msg":"foo"}`))
	assert.Equal(t, "{not json", messageOf(t, decodeJSON, "{not json"))

	both, _ := newTestEncoder(t, Config{DecodeBuffers: true, DecodeJSON: true})
	assert.Equal(t, "foo", messageOf(t, both, []byte(`{"msg":"foo"}`)))
}

func TestEncoderUseStructuredData(t *testing.T) {
	yes, no := true, false
	rec := record.NewObject(record.F("msg", "foo"), record.F("data", record.NewObject(record.F("bar", "baz"))))

	enc, _ := newTestEncoder(t, Config{UseStructuredData: &yes, PrivateEnterpriseNumber: "1"})
	assert.True(t, strings.HasSuffix(enc.Encode(rec), ` [data@1 bar="baz"] foo`+"\n"))
	assert.True(t, strings.HasSuffix(enc.Encode(map[string]interface{}{"msg": "foo"}), " - foo\n"))

	enc, _ = newTestEncoder(t, Config{UseStructuredData: &no, PrivateEnterpriseNumber: "1"})
	assert.True(t, strings.HasSuffix(enc.Encode(rec), ` - foo {"data":{"bar":"baz"}}`+"\n"))
	assert.True(t, strings.HasSuffix(enc.Encode(map[string]interface{}{"msg": "foo"}), " - foo\n"))

	enc, _ = newTestEncoder(t, Config{Type: "BSD"})
	assert.False(t, enc.useStructuredData)
}

func TestEncoderJSONFallback(t *testing.T) {
	enc, factory := newTestEncoder(t, testConfig())
	assert.Equal(t, `[null,"foo"]`, messageOf(t, enc, []interface{}{nil, "foo"}))
	assert.Equal(t, `"2021-03-04T05:06:07.891Z"`, messageOf(t, enc, testTime))
	assert.Equal(t, "true", messageOf(t, enc, true))
	assert.Equal(t, "123", messageOf(t, enc, 123))
	assert.Equal(t, `{"v":"bar","msg":"foo"}`, messageOf(t, enc, record.NewObject(record.F("v", "bar"), record.F("msg", "foo"))))
	assert.Equal(t, `{"appName":null,"message":"foo"}`, messageOf(t, enc, record.NewObject(record.F("appName", nil), record.F("message", "foo"))))
	assert.Equal(t, `{"message":"foo","extra":1}`, messageOf(t, enc, record.NewObject(record.F("message", "foo"), record.F("extra", 1))))

	line := parseEncoded(t, enc, map[string]interface{}{"foo": "bar"})
	assert.Equal(t, syslogprotocol.SeverityNotice, line.Severity)
	assert.Equal(t, `{"foo":"bar"}`, line.Message)

	dump, err := factory.DumpMetrics(false)
	require.NoError(t, err)
	assert.Contains(t, dump, `testencoder_encoded_records_total{path="json"} 8`)
}

func TestEncoderCircular(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	obj := record.NewObject()
	obj.Set("foo", obj)
	assert.Equal(t, `{"foo":"[Circular]"}`, messageOf(t, enc, obj))

	m := map[string]interface{}{}
	m["foo"] = m
	assert.Equal(t, `{"foo":"[Circular]"}`, messageOf(t, enc, m))

	type node struct {
		Name string
		Kids map[string]interface{}
	}
	n := node{Name: "n", Kids: map[string]interface{}{}}
	n.Kids["self"] = n.Kids
	assert.Equal(t, `{"root":{"Name":"n","Kids":{"self":"[Circular]"}}}`, messageOf(t, enc, map[string]interface{}{"root": n}))
	assert.Equal(t, `hi {"tree":{"Name":"n","Kids":{"self":"[Circular]"}}}`, messageOf(t, enc, map[string]interface{}{"msg": "hi", "tree": n}))
}

func TestEncoderBunyanHeader(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	pid := strconv.Itoa(os.Getpid())

	assert.Equal(t, "<157>1 2021-03-04T05:06:07.891Z 127.0.1.1 Test "+pid+" FOOMSG - foo\n",
		enc.Encode(map[string]interface{}{"msg": "foo"}))
	assert.Equal(t, "<152>1", strings.Fields(enc.Encode(map[string]interface{}{"msg": "foo", "level": "fatal"}))[0])
	assert.Equal(t, "<155>1", strings.Fields(enc.Encode(map[string]interface{}{"msg": "foo", "level": 50}))[0])
	assert.Equal(t, "<157>1", strings.Fields(enc.Encode(map[string]interface{}{"msg": "foo", "level": "50"}))[0])
	assert.Equal(t, "<159>1", strings.Fields(enc.Encode(map[string]interface{}{"msg": "foo", "level": "tracE"}))[0])
	assert.Equal(t, "<157>1", strings.Fields(enc.Encode(map[string]interface{}{"msg": "foo", "level": nil}))[0])
	assert.Equal(t, "<13>1", strings.Fields(enc.Encode(map[string]interface{}{"msg": "foo", "facility": "user"}))[0])

	then := testTime.AddDate(-1, 0, 0)
	assert.Equal(t, "2020-03-04T05:06:07.891Z", parseEncoded(t, enc, map[string]interface{}{"msg": "foo", "time": then}).Timestamp)
	assert.Equal(t, "2020-03-04T05:06:07.891Z", parseEncoded(t, enc, map[string]interface{}{"msg": "foo", "time": "2020-03-04T07:06:07.891+02:00"}).Timestamp)
	assert.Equal(t, syslogprotocol.NilValue, parseEncoded(t, enc, map[string]interface{}{"msg": "foo", "time": "foo"}).Timestamp)
	assert.Equal(t, syslogprotocol.NilValue, parseEncoded(t, enc, map[string]interface{}{"msg": "foo", "time": false}).Timestamp)

	line := parseEncoded(t, enc, map[string]interface{}{"msg": "foo", "hostname": "web-1.example", "name": "api", "pid": "42", "msgId": "REQ"})
	assert.Equal(t, "web-1.example", line.Hostname)
	assert.Equal(t, "api", line.AppName)
	assert.Equal(t, "42", line.ProcID)
	assert.Equal(t, "REQ", line.MsgID)
	assert.Equal(t, "foo", line.Message)
}

func TestEncoderBunyanStructuredData(t *testing.T) {
	enc, factory := newTestEncoder(t, testConfig())

	assert.Equal(t, "[timeQuality]", sdOf(t, enc, record.NewObject(record.F("timeQuality", record.NewObject()))))
	assert.Equal(t, `[timeQuality tzKnown="1"]`, sdOf(t, enc, record.NewObject(record.F("timeQuality", record.NewObject(record.F("tzKnown", 1))))))
	assert.Equal(t, `[timeQuality isSynced="0"]`, sdOf(t, enc, record.NewObject(record.F("timeQuality", record.NewObject(record.F("isSynced", 0))))))
	for _, val := range []interface{}{nil, 1.2, 3, -1, math.Inf(1), map[string]interface{}{}} {
		assert.Equal(t, "", sdOf(t, enc, record.NewObject(record.F("timeQuality", record.NewObject(record.F("tzKnown", val))))), val)
		assert.Equal(t, "", sdOf(t, enc, record.NewObject(record.F("timeQuality", record.NewObject(record.F("isSynced", val))))), val)
	}
	assert.Equal(t, `[timeQuality isSynced="1" syncAccuracy="123"]`,
		sdOf(t, enc, record.NewObject(record.F("timeQuality", record.NewObject(record.F("isSynced", 1), record.F("syncAccuracy", 123))))))

	for _, tq := range []*record.Object{
		record.NewObject(record.F("isSynced", 0), record.F("syncAccuracy", 123)),
		record.NewObject(record.F("syncAccuracy", 123)),
	} {
		rec := record.NewObject(record.F("msg", "foo"), record.F("timeQuality", tq))
		line := parseEncoded(t, enc, rec)
		assert.Equal(t, syslogprotocol.NilValue, line.StructuredData)
		assert.Regexp(t, regexp.MustCompile(`^foo \{"SD_VALIDATION_ERROR":".*syncAccuracy.*is not allowed"\}$`), line.Message)
	}

	assert.Equal(t, "[origin]", sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject()))))
	assert.Equal(t, `[origin ip="127.0.0.1"]`, sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject(record.F("ip", "127.0.0.1"))))))
	assert.Equal(t, `[origin ip="foo"]`, sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject(record.F("ip", "foo"))))))
	assert.Equal(t, `[origin ip="foo.bar"]`, sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject(record.F("ip", "foo.bar"))))))
	assert.Equal(t, `[origin ip="127.0.0.1" ip="127.0.0.2"]`,
		sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject(record.F("ip", []interface{}{"127.0.0.1", "127.0.0.2"}))))))
	assert.Equal(t, `[origin enterpriseId="1234"]`, sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject(record.F("enterpriseId", "1234"))))))
	assert.Equal(t, `[origin software="poop"]`, sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject(record.F("software", "poop"))))))
	assert.Equal(t, `[origin swVersion="4242"]`, sdOf(t, enc, record.NewObject(record.F("origin", record.NewObject(record.F("swVersion", "4242"))))))

	badIP := record.NewObject(record.F("msg", "foo"), record.F("origin", record.NewObject(record.F("ip", "."))))
	assert.Regexp(t, regexp.MustCompile(`ip.*must be a valid hostname`), messageOf(t, enc, badIP))

	assert.Equal(t, "[meta]", sdOf(t, enc, record.NewObject(record.F("meta", record.NewObject()))))
	assert.Equal(t, `[meta sequenceId="1"]`, sdOf(t, enc, record.NewObject(record.F("meta", record.NewObject(record.F("sequenceId", 1))))))
	assert.Equal(t, `[meta sysUpTime="1234"]`, sdOf(t, enc, record.NewObject(record.F("meta", record.NewObject(record.F("sysUpTime", 1234))))))
	assert.Equal(t, `[meta language="en-us"]`, sdOf(t, enc, record.NewObject(record.F("meta", record.NewObject(record.F("language", "en-us"))))))
	for _, val := range []interface{}{"en_US", 1234, "jabberwocky", nil} {
		rec := record.NewObject(record.F("meta", record.NewObject(record.F("language", val))))
		assert.Equal(t, "", sdOf(t, enc, rec), val)
	}

	dump, err := factory.DumpMetrics(false)
	require.NoError(t, err)
	assert.Contains(t, dump, "testencoder_sd_validation_errors_total 19\n")
}

func everythingSD() *record.Object {
	return record.NewObject(
		record.F("timeQuality", record.NewObject(record.F("tzKnown", 1), record.F("isSynced", 1), record.F("syncAccuracy", 123))),
		record.F("origin", record.NewObject(
			record.F("ip", []interface{}{"127.0.0.1", "foo.bar"}),
			record.F("enterpriseId", "3434.34355"),
			record.F("software", "keke"),
			record.F("swVersion", "1.2.3"),
		)),
		record.F("meta", record.NewObject(record.F("sequenceId", 55), record.F("sysUpTime", 21355), record.F("language", "fr"))),
	)
}

const everythingSDText = `[timeQuality tzKnown="1" isSynced="1" syncAccuracy="123"]` +
	`[origin ip="127.0.0.1" ip="foo.bar" enterpriseId="3434.34355" software="keke" swVersion="1.2.3"]` +
	`[meta sequenceId="55" sysUpTime="21355" language="fr"]`

func TestEncoderEverything(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	assert.Equal(t, everythingSDText, sdOf(t, enc, everythingSD()))

	glossy := record.NewObject(record.F("message", "foo"), record.F("structuredData", everythingSD()))
	line := parseEncoded(t, enc, glossy)
	assert.Equal(t, everythingSDText, line.StructuredData)
	assert.Equal(t, "foo", line.Message)
}

func TestEncoderCustomStructuredData(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	pen := strconv.Itoa(defs.TestPEN)

	invalidPEN := testConfig()
	invalidPEN.PrivateEnterpriseNumber = "foo"
	noPEN, _ := newTestEncoder(t, invalidPEN)
	assert.Equal(t, "", sdOf(t, noPEN, record.NewObject(record.F("foo", record.NewObject(record.F("bar", 123))))))

	assert.Equal(t, `[foo@`+pen+` bar="123"]`, sdOf(t, enc, record.NewObject(record.F("foo", record.NewObject(record.F("bar", 123))))))

	disabled := testConfig()
	no := false
	disabled.UseStructuredData = &no
	noSD, _ := newTestEncoder(t, disabled)
	assert.Equal(t, "", sdOf(t, noSD, record.NewObject(record.F("foo", record.NewObject(record.F("bar", 123))))))

	for _, val := range []interface{}{"bar", testTime, true, regexp.MustCompile(".")} {
		rec := record.NewObject(record.F("foo", val))
		assert.Equal(t, "", sdOf(t, enc, rec), val)
		got, _ := rec.Get("foo")
		assert.Equal(t, val, got)
		assert.False(t, rec.Has(defs.ValidationErrorKey))
	}

	illegal := record.NewObject(record.F("@", record.NewObject(record.F("invalid", "true"))))
	assert.Equal(t, "", sdOf(t, enc, illegal))
	assert.False(t, illegal.Has(defs.ValidationErrorKey))

	assert.Equal(t, `[foo@`+pen+` bar="1" bar="2" bar="3"]`,
		sdOf(t, enc, record.NewObject(record.F("foo", record.NewObject(record.F("bar", []interface{}{1, 2, 3}))))))
	assert.Equal(t, `[foo@`+pen+` q="a\"b\\c\]"]`,
		sdOf(t, enc, record.NewObject(record.F("foo", record.NewObject(record.F("q", `a"b\c]`))))))
}

func TestEncoderExtraData(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	assert.Equal(t, `hai {"@":"foo"}`, messageOf(t, enc, record.NewObject(record.F("msg", "hai"), record.F("@", "foo"))))

	glossy := record.NewObject(record.F("message", "hai"), record.F("structuredData", record.NewObject(record.F("@", "foo"))))
	assert.Equal(t, `hai {"@":"foo"}`, messageOf(t, enc, glossy))
}

func TestEncoderTypedStructuredData(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	pen := strconv.Itoa(defs.TestPEN)
	line := parseEncoded(t, enc, map[string]interface{}{"msg": "x", "data": map[string]int{"a": 1}})
	assert.Equal(t, `[data@`+pen+` a="1"]`, line.StructuredData)
	assert.Equal(t, "x", line.Message)

	line = parseEncoded(t, enc, map[string]interface{}{"msg": "x", "data": map[string]interface{}{"a": []int{1, 2}}})
	assert.Equal(t, `[data@`+pen+` a="1" a="2"]`, line.StructuredData)
}

func TestEncoderDoesNotModifyInput(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	rec := map[string]interface{}{"level": "warn", "msg": "foo", "data": map[string]interface{}{"bar": "baz"}}
	enc.Encode(rec)
	assert.Equal(t, map[string]interface{}{"level": "warn", "msg": "foo", "data": map[string]interface{}{"bar": "baz"}}, rec)

	obj := record.NewObject(record.F("msg", "foo"), record.F("meta", record.NewObject(record.F("language", "??"))))
	enc.Encode(obj)
	assert.Equal(t, []string{"msg", "meta"}, obj.Keys())
}

func TestEncoderGlossy(t *testing.T) {
	enc, factory := newTestEncoder(t, testConfig())
	assert.Equal(t, "foo", messageOf(t, enc, map[string]interface{}{"message": "foo"}))

	line := parseEncoded(t, enc, map[string]interface{}{
		"message":  "bar",
		"facility": "daemon",
		"severity": "err",
		"host":     "10.0.0.1",
		"appName":  "svc",
		"pid":      7,
		"date":     "2020-01-02T03:04:05.006Z",
	})
	assert.Equal(t, syslogprotocol.Facility(3), line.Facility)
	assert.Equal(t, syslogprotocol.SeverityErr, line.Severity)
	assert.Equal(t, "10.0.0.1", line.Hostname)
	assert.Equal(t, "svc", line.AppName)
	assert.Equal(t, "7", line.ProcID)
	assert.Equal(t, "2020-01-02T03:04:05.006Z", line.Timestamp)
	assert.Equal(t, "bar", line.Message)

	line = parseEncoded(t, enc, map[string]interface{}{"message": "baz"})
	assert.Equal(t, syslogprotocol.SeverityNotice, line.Severity)
	assert.Equal(t, "2021-03-04T05:06:07.891Z", line.Timestamp)

	dump, err := factory.DumpMetrics(false)
	require.NoError(t, err)
	assert.Contains(t, dump, `testencoder_encoded_records_total{path="glossy"} 3`)
}

func TestEncoderRFC3164(t *testing.T) {
	enc, _ := newTestEncoder(t, Config{Type: "BSD", Hostname: defs.TestHostname, AppName: defs.TestAppName, PID: "12"})
	assert.Equal(t, "<133>Mar  4 05:06:07 127.0.1.1 Test[12]: foo\n", enc.Encode("foo"))
}

func TestEncoderBunyanIdempotence(t *testing.T) {
	enc, _ := newTestEncoder(t, testConfig())
	first := parseEncoded(t, enc, map[string]interface{}{"msg": "hello world", "level": 40})
	second := parseEncoded(t, enc, map[string]interface{}{"msg": first.Message, "level": 40})
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.Severity, second.Severity)
}

func TestEncoderMetricsBytes(t *testing.T) {
	enc, factory := newTestEncoder(t, Config{PID: "1", Hostname: "h", AppName: "a"})
	text := enc.Encode("x")
	dump, err := factory.DumpMetrics(false)
	require.NoError(t, err)
	assert.Contains(t, dump, "testencoder_encoded_bytes_total "+strconv.Itoa(len(text))+"\n")
}

func TestEncoderMetricsTotals(t *testing.T) {
	factory := metrics.NewMetricFactoryWithRegisterer(nil, "testtotals_", nil, nil)
	m := NewMetrics(factory)
	enc := MustNewEncoder(logger.Root(), Config{}, m)
	length := len(enc.Encode("x")) + len(enc.Encode(123)) + len(enc.Encode(map[string]interface{}{"msg": "y"}))
	assert.Equal(t, 3.0, m.TotalRecords())
	assert.Equal(t, float64(length), m.TotalBytes())
}

func TestConfigParsePEN(t *testing.T) {
	for text, pen := range map[string]int{
		"":            0,
		"12343":       12343,
		" 012343 ":    12343,
		"12343.1":     12343,
		"1a":          1,
		"foo":         0,
		"0":           0,
		"-5":          0,
	} {
		cfg := Config{PrivateEnterpriseNumber: text}
		assert.Equal(t, pen, cfg.ParsePEN(), text)
	}
	overflow := Config{PrivateEnterpriseNumber: "99999999999999999999999"}
	assert.Equal(t, 0, overflow.ParsePEN())
}
