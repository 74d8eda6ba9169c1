package internal

const (
	// 配置文件目录名
	AppName = "dupfind"

	// 默认哈希算法
	DefaultAlgorithm = "sha256"

	// 哈希时每次读取的缓冲区大小
	DefaultBufferSize = 4096

	// 无法识别文件类型时的标识
	UnknownKind = "unknown"

	// 文件类型检测所需的文件头部大小（字节）
	FileHeaderSize = 261
)
