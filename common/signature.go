package common

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SignHMAC256 HMAC-SHA256签名（hex编码）
func SignHMAC256(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignHMAC256Base64 HMAC-SHA256签名（base64编码）
func SignHMAC256Base64(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// HashMD5Upper MD5摘要（大写hex编码），用于表单签名
func HashMD5Upper(message string) string {
	sum := md5.Sum([]byte(message))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SignECDSA P-256曲线ECDSA签名
// 对消息先做SHA-256摘要，私钥为hex编码的标量，返回 r||s 的hex拼接
func SignECDSA(message, privateKeyHex string) (string, error) {
	d, ok := new(big.Int).SetString(privateKeyHex, 16)
	if !ok {
		return "", fmt.Errorf("invalid private key hex: %q", privateKeyHex)
	}

	curve := elliptic.P256()
	priv := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve},
		D:         d,
	}
	priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(d.Bytes())

	digest := sha256.Sum256([]byte(message))
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	if err != nil {
		return "", fmt.Errorf("ecdsa sign: %w", err)
	}

	return fmt.Sprintf("%064x%064x", r, s), nil
}

// BuildQueryString 构建查询字符串（键排序后URL编码）
func BuildQueryString(params map[string]interface{}) string {
	if len(params) == 0 {
		return ""
	}

	// 排序键
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// 构建查询字符串
	var parts []string
	for _, k := range keys {
		v := params[k]
		var value string
		switch val := v.(type) {
		case string:
			value = val
		case int:
			value = strconv.Itoa(val)
		case int64:
			value = strconv.FormatInt(val, 10)
		case float64:
			value = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			value = strconv.FormatBool(val)
		default:
			value = fmt.Sprintf("%v", val)
		}
		parts = append(parts, fmt.Sprintf("%s=%s", k, url.QueryEscape(value)))
	}
	return strings.Join(parts, "&")
}

// GetTimestamp 获取时间戳（毫秒）
func GetTimestamp() int64 {
	return time.Now().UnixMilli()
}

// GetTimestampSeconds 获取时间戳（秒）
func GetTimestampSeconds() int64 {
	return time.Now().Unix()
}

// GetTimestampNano 获取时间戳（纳秒）
func GetTimestampNano() int64 {
	return time.Now().UnixNano()
}
