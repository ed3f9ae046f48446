package resty

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient : 공개 시세 REST 조회용 클라이언트
//   - 기본 Accept: application/json
//   - 재시도 대상: 네트워크 에러, 5xx, 429(rate limit)
//   - 재시도 대기 1초부터 최대 5초
type RestyClient interface {
	MakeRequest(ctx context.Context, body any, header any, contentType ...string) ReadyRestyReq
}

// ReadyRestyReq : 시세 조회는 GET 만 사용. 쿼리는 순서대로 escape 되어 붙음
type ReadyRestyReq interface {
	Get(url string, queryParams ...QueryParam) (*resty.Response, error)
}

// NewDefaultRestyClient : 재시도 없음, timeout 생략 시 10초
func NewDefaultRestyClient(trace bool, timeout ...time.Duration) RestyClient {
	return newDefaultRestyClient(trace, 0, timeout...)
}

// NewDefaultRestyClientWithRetryCount : 거래소 API 호출용 (Binance 는 2회 재시도 사용)
func NewDefaultRestyClientWithRetryCount(trace bool, retryCount int, timeout ...time.Duration) RestyClient {
	return newDefaultRestyClient(trace, retryCount, timeout...)
}

func newDefaultRestyClient(trace bool, retryCount int, timeout ...time.Duration) *defaultRestyClient {
	client := &defaultRestyClient{}
	client.setupClient(trace, retryCount, timeout...)
	return client
}

// NewMockRestyClient : (method, path) 별 고정 응답. 등록 안 된 요청은 에러
func NewMockRestyClient(mockFuncs []MockFunc) RestyClient {
	mocks := make(map[string]map[string]MockFunc)
	for _, mockFunc := range mockFuncs {
		if _, ok := mocks[mockFunc.Method]; !ok {
			mocks[mockFunc.Method] = make(map[string]MockFunc)
		}
		mocks[mockFunc.Method][mockFunc.Path] = mockFunc
	}
	return &mockRestyClient{
		mocks: mocks,
	}
}

// QueryParam : Value 는 fmt %v 로 문자열화
type QueryParam struct {
	Key   string
	Value any
}
