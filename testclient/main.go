package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// APIResponse 服务端统一响应结构
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	var (
		apiURL   = flag.String("api", "http://localhost:21001/api/v1", "社交服务API地址")
		wsURL    = flag.String("wsurl", "ws://localhost:21001/api/v1/feed/ws", "动态推送WebSocket地址")
		watchFor = flag.Duration("watch", 10*time.Second, "实时动态监听时长")
	)
	flag.Parse()

	fmt.Println("🎬 社交聚合服务冒烟测试")
	fmt.Println(strings.Repeat("-", 50))

	// 1. 创建用户
	alice := createUser(*apiURL, "alice", "alice@example.com")
	bob := createUser(*apiURL, "bob", "bob@example.com")
	fmt.Printf("✅ 用户创建成功: alice=%d bob=%d\n", alice, bob)

	// 2. 创建电影
	film1 := createFilm(*apiURL, "Seven Samurai", "1954-04-26")
	film2 := createFilm(*apiURL, "Rashomon", "1950-08-26")
	fmt.Printf("✅ 电影创建成功: %d %d\n", film1, film2)

	// 3. 监听alice的实时动态
	go watchFeed(*wsURL, alice, *watchFor)
	time.Sleep(500 * time.Millisecond)

	// 4. 好友与点赞
	doRequest("PUT", fmt.Sprintf("%s/users/%d/friends/%d", *apiURL, alice, bob), nil)
	fmt.Println("✅ 好友添加成功")

	doRequest("PUT", fmt.Sprintf("%s/films/%d/like/%d", *apiURL, film1, alice), nil)
	doRequest("PUT", fmt.Sprintf("%s/films/%d/like/%d", *apiURL, film1, bob), nil)
	doRequest("PUT", fmt.Sprintf("%s/films/%d/like/%d", *apiURL, film2, bob), nil)
	fmt.Println("✅ 点赞完成")

	// 5. 查询接口
	printResult("热门电影", doRequest("GET", *apiURL+"/films/popular?count=5", nil))
	printResult("共同电影", doRequest("GET", fmt.Sprintf("%s/films/common?userId=%d&friendId=%d", *apiURL, alice, bob), nil))
	printResult("推荐电影", doRequest("GET", fmt.Sprintf("%s/users/%d/recommendations", *apiURL, alice), nil))
	printResult("用户动态", doRequest("GET", fmt.Sprintf("%s/users/%d/feed", *apiURL, alice), nil))

	time.Sleep(*watchFor)
	fmt.Println("🏁 冒烟测试完成")
}

// createUser 创建用户并返回ID
func createUser(apiURL, login, email string) int64 {
	body := map[string]interface{}{
		"login":    login,
		"email":    email,
		"birthday": "1990-01-01",
	}
	resp := doRequest("POST", apiURL+"/users", body)

	var user struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		log.Fatalf("解析用户响应失败: %v", err)
	}
	return user.ID
}

// createFilm 创建电影并返回ID
func createFilm(apiURL, name, releaseDate string) int64 {
	body := map[string]interface{}{
		"name":         name,
		"release_date": releaseDate,
		"duration":     120,
	}
	resp := doRequest("POST", apiURL+"/films", body)

	var film struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &film); err != nil {
		log.Fatalf("解析电影响应失败: %v", err)
	}
	return film.ID
}

// doRequest 发送HTTP请求并解析统一响应
func doRequest(method, url string, body interface{}) *APIResponse {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("序列化请求失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Fatalf("构建请求失败: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("请求失败 %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		log.Fatalf("解析响应失败 %s %s: %v", method, url, err)
	}
	if !apiResp.Success {
		log.Fatalf("❌ 请求失败 %s %s: %s", method, url, apiResp.Message)
	}
	return &apiResp
}

// printResult 打印查询结果
func printResult(title string, resp *APIResponse) {
	fmt.Printf("📋 %s: %s\n", title, string(resp.Data))
}

// watchFeed 订阅用户实时动态
func watchFeed(wsURL string, userID int64, duration time.Duration) {
	url := fmt.Sprintf("%s?userId=%d", wsURL, userID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Printf("⚠️ WebSocket连接失败: %v\n", err)
		return
	}
	defer conn.Close()

	fmt.Printf("📡 开始监听用户%d的实时动态\n", userID)
	deadline := time.Now().Add(duration)
	conn.SetReadDeadline(deadline)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		fmt.Printf("🔔 实时动态: %s\n", string(message))
	}
}
